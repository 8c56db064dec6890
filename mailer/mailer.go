package mailer

import (
	"fmt"
	"os"

	"Knockout/models"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ResultMailer sends match-result notices to the participating federations.
// It is a sibling consumer of the match-write trigger: its failures are
// logged by the caller and never block bracket advancement.
type ResultMailer struct {
	APIKey string
	Sender string
}

func NewFromEnv() *ResultMailer {
	return &ResultMailer{
		APIKey: os.Getenv("SENDGRID_API_KEY"),
		Sender: os.Getenv("SENDGRID_SENDER"),
	}
}

func (rm *ResultMailer) Enabled() bool {
	return rm.APIKey != "" && rm.Sender != ""
}

// SendMatchResult emails the final scoreline to each recipient.
func (rm *ResultMailer) SendMatchResult(recipients []string, home, away *models.Team, match *models.Match) error {
	h := hermes.Hermes{
		Product: hermes.Product{
			Name: "Knockout",
			Link: os.Getenv("APP_URL"),
		},
	}

	intros := []string{
		fmt.Sprintf("%s %d : %d %s", home.Country, match.HomeScore, match.AwayScore, away.Country),
		fmt.Sprintf("Stage %s, fixture %d. Mode: %s.", match.Stage, match.Pair, match.Mode),
	}
	if match.Decision != "" {
		intros = append(intros, fmt.Sprintf("Decision: %s.", match.Decision))
	}

	email := hermes.Email{
		Body: hermes.Body{
			Title:  "Full-time",
			Intros: intros,
			Outros: []string{"This is an automated result notice."},
		},
	}

	htmlBody, err := h.GenerateHTML(email)
	if err != nil {
		return err
	}
	textBody, err := h.GeneratePlainText(email)
	if err != nil {
		return err
	}

	from := mail.NewEmail("Knockout", rm.Sender)
	subject := fmt.Sprintf("Match Result: %d - %d", match.HomeScore, match.AwayScore)
	client := sendgrid.NewSendClient(rm.APIKey)

	for _, rcpt := range recipients {
		to := mail.NewEmail("", rcpt)
		message := mail.NewSingleEmail(from, subject, to, textBody, htmlBody)
		if _, err := client.Send(message); err != nil {
			return err
		}
	}
	return nil
}
