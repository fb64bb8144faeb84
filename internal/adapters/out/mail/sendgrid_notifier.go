// internal/adapters/out/mail/sendgrid_notifier.go
package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	tokdom "aiqx/internal/domain/token"
)

// SendGridNotifier mails the operator when a deployment confirms.
type SendGridNotifier struct {
	apiKey string
	from   string
	to     string
}

func NewSendGridNotifier(apiKey, from, to string) *SendGridNotifier {
	return &SendGridNotifier{apiKey: apiKey, from: from, to: to}
}

// DeploymentConfirmed sends the confirmation mail. The usecase treats
// failures as best-effort, but the error is still returned for logging.
func (n *SendGridNotifier) DeploymentConfirmed(_ context.Context, d tokdom.TokenDeployment) error {
	if n.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if n.from == "" || n.to == "" {
		return fmt.Errorf("sendgrid from/to address is empty")
	}

	subject := fmt.Sprintf("Token deployed: %s (%s)", d.Name, d.Symbol)
	body := fmt.Sprintf(
		"Token %s (%s) confirmed on %s.\n\nMint: %s\nTransaction: %s\nSupply: %s (decimals %d)\n",
		d.Name, d.Symbol, d.Network,
		d.MintAddress, d.TransactionSignature,
		d.TotalSupply, d.Decimals,
	)

	message := mail.NewSingleEmail(
		mail.NewEmail("AIQX Labs", n.from),
		subject,
		mail.NewEmail("", n.to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	response, err := sendgrid.NewSendClient(n.apiKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d, body=%s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}

	log.Printf("[sendgrid] deployment mail sent: status=%d mint=%s", response.StatusCode, d.MintAddress)
	return nil
}
