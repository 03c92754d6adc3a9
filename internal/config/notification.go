package config

import (
	"strings"

	"github.com/spf13/viper"
)

// MessageTemplate is a notification subject/body pair. Bodies may contain
// {service}, {amount} and {due_date} tokens resolved at send time.
type MessageTemplate struct {
	Subject string `mapstructure:"subject"`
	Body    string `mapstructure:"body"`
}

// NotificationConfig holds the customer-facing message templates.
type NotificationConfig struct {
	Welcome        MessageTemplate `mapstructure:"welcome"`
	Cancellation   MessageTemplate `mapstructure:"cancellation"`
	InvoiceDue     MessageTemplate `mapstructure:"invoiceDue"`
	PaymentReceipt MessageTemplate `mapstructure:"paymentReceipt"`
}

// DefaultNotificationConfig returns the built-in message templates, used when
// no notification.yml is present.
func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Welcome: MessageTemplate{
			Subject: "Welcome to {service}",
			Body:    "Welcome! You have successfully subscribed to {service}.",
		},
		Cancellation: MessageTemplate{
			Subject: "Subscription canceled",
			Body:    "Your subscription to {service} has been canceled.",
		},
		InvoiceDue: MessageTemplate{
			Subject: "New invoice",
			Body:    "A new invoice for your subscription is ready. Amount due: {amount}, payable by {due_date}.",
		},
		PaymentReceipt: MessageTemplate{
			Subject: "Payment received",
			Body:    "Your payment of {amount} was successful. Thank you!",
		},
	}
}

// LoadNotificationConfig reads notification.yml, falling back to defaults when
// the file is absent or a template is left empty.
func LoadNotificationConfig() (NotificationConfig, error) {
	v := viper.New()

	v.SetConfigName("notification")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/subtrack")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SUBTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultNotificationConfig()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return NotificationConfig{}, err
		}
		return defaults, nil
	}

	var cfg NotificationConfig
	if err := v.UnmarshalKey("notification", &cfg); err != nil {
		return NotificationConfig{}, err
	}

	mergeTemplate(&cfg.Welcome, defaults.Welcome)
	mergeTemplate(&cfg.Cancellation, defaults.Cancellation)
	mergeTemplate(&cfg.InvoiceDue, defaults.InvoiceDue)
	mergeTemplate(&cfg.PaymentReceipt, defaults.PaymentReceipt)

	return cfg, nil
}

func mergeTemplate(tmpl *MessageTemplate, fallback MessageTemplate) {
	if strings.TrimSpace(tmpl.Subject) == "" {
		tmpl.Subject = fallback.Subject
	}
	if strings.TrimSpace(tmpl.Body) == "" {
		tmpl.Body = fallback.Body
	}
}
