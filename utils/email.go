// utils/email.go
package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/keighl/postmark"
	"github.com/rs/zerolog/log"

	"go-acaishop/models"
)

// EmailService handles sending emails using Postmark. When no API
// token is configured the service is disabled and all sends are
// no-ops, so the engine can run without outbound mail.
type EmailService struct {
	client *postmark.Client
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		log.Warn().Msg("POSTMARK_API_TOKEN not set; email notifications disabled")
		return &EmailService{}
	}
	return &EmailService{client: postmark.NewClient(apiToken, "")}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, textContent string) error {
	if es.client == nil || toEmail == "" {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     os.Getenv("EMAIL_SENDER"),
		To:       toEmail,
		Subject:  subject,
		TextBody: textContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendNewOrderEmail notifies the shop about a freshly created order.
// The body mirrors the printed kitchen ticket.
func (es *EmailService) SendNewOrderEmail(toEmail string, order models.Order) error {
	subject := "Novo Pedido"
	if order.ScheduledTime != "" {
		subject = "Novo Pedido Agendado"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cliente: %s\n", order.CustomerName)
	if order.ScheduledTime != "" {
		fmt.Fprintf(&b, "Horário: %s\n", order.ScheduledTime)
	}
	fmt.Fprintf(&b, "Entrega: %s\n", order.DeliveryOption)
	if order.DeliveryOption == models.DeliveryOptionDelivery {
		fmt.Fprintf(&b, "Endereço: %s\nBairro: %s\n", order.DeliveryAddress, order.Neighborhood)
	}
	b.WriteString("\nItens do Pedido:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  - %dx %s (%s)\n", item.Quantity, item.ProductName, item.Size.Name)
		if len(item.Addons) > 0 {
			names := make([]string, len(item.Addons))
			for i, addon := range item.Addons {
				names[i] = addon.Name
			}
			fmt.Fprintf(&b, "    Adicionais: %s\n", strings.Join(names, ", "))
		}
	}
	fmt.Fprintf(&b, "\nSubtotal: R$ %.2f\n", order.Subtotal)
	if order.DeliveryFee > 0 {
		fmt.Fprintf(&b, "Taxa de Entrega: R$ %.2f\n", order.DeliveryFee)
	}
	if order.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Desconto: -R$ %.2f\n", order.DiscountAmount)
	}
	if order.ShippingDiscountAmount > 0 {
		fmt.Fprintf(&b, "Desc. Frete: -R$ %.2f\n", order.ShippingDiscountAmount)
	}
	if order.LoyaltyDiscountAmount > 0 {
		fmt.Fprintf(&b, "Desc. Fidelidade: -R$ %.2f\n", order.LoyaltyDiscountAmount)
	}
	if order.LoyaltyShippingDiscountAmount > 0 {
		fmt.Fprintf(&b, "Frete Grátis (Fidelidade): -R$ %.2f\n", order.LoyaltyShippingDiscountAmount)
	}
	fmt.Fprintf(&b, "TOTAL: R$ %.2f\n\nForma de Pagamento: %s\n", order.Total, order.PaymentMethod)
	if order.PaymentMethod == "cash" && order.ChangeFor > 0 {
		fmt.Fprintf(&b, "Troco para: R$ %.2f\n", order.ChangeFor)
	}

	return es.SendEmail(toEmail, subject, b.String())
}

// SendStatusUpdateEmail notifies the customer about a status change
func (es *EmailService) SendStatusUpdateEmail(toEmail string, order models.Order) error {
	subject := "Atualização do seu pedido"
	content := fmt.Sprintf("Olá %s,\n\nSeu pedido #%s agora está: %s.\n\nObrigado pela preferência!\n",
		order.CustomerName, order.ID.Hex(), order.Status)
	return es.SendEmail(toEmail, subject, content)
}
