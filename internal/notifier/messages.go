package notifier

import (
	"strings"

	"github.com/smallbiznis/subtrack/internal/config"
)

// Render resolves {token} placeholders in a message template. Unknown tokens
// are left as-is so a misconfigured template is still visibly wrong rather
// than silently empty.
func Render(tmpl config.MessageTemplate, vars map[string]string) (subject, body string) {
	subject = tmpl.Subject
	body = tmpl.Body
	for key, value := range vars {
		token := "{" + key + "}"
		subject = strings.ReplaceAll(subject, token, value)
		body = strings.ReplaceAll(body, token, value)
	}
	return subject, body
}
