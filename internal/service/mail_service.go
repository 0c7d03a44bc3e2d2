package service

import (
	"context"
	"fmt"

	"github.com/FredesVirginia/captus-back/internal/apierror"
)

// MailSender delivers a message with an optional PDF attachment. Satisfied by
// infra.Mailer.
type MailSender interface {
	Send(to, subject, body, attachName string, pdf []byte) error
}

type MailService interface {
	// SendOrderMail notifies the shop of a new order, attaching its receipt.
	SendOrderMail(ctx context.Context, to string, orderID uint, pdf []byte) error
}

type mailService struct {
	sender MailSender
}

func NewMailService(sender MailSender) MailService {
	return &mailService{sender: sender}
}

func (s *mailService) SendOrderMail(ctx context.Context, to string, orderID uint, pdf []byte) error {
	subject := fmt.Sprintf("Nueva orden recibida - #%d", orderID)
	body := fmt.Sprintf("Se registro la orden #%d. El comprobante se adjunta en PDF.", orderID)
	attach := fmt.Sprintf("orden-%d.pdf", orderID)

	if err := s.sender.Send(to, subject, body, attach, pdf); err != nil {
		return apierror.Classify(err, apierror.CodeEmailSendFailed, "No se pudo enviar el correo")
	}
	return nil
}
