// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package mail

import (
	"fmt"
	"strings"
	"text/template"
)

// activationTemplate renders the plain-text body of the account activation
// mail. The four-digit code must appear verbatim so the user can type it
// back into the activation form.
var activationTemplate = template.Must(template.New("activation").Parse(
	`Hello {{.Name}},

Thank you for registering with Edora. To activate your account, please
enter the following code in the activation form:

    {{.Code}}

The code is valid for 5 minutes. If you did not create an account, you
can safely ignore this message.

The Edora Team
`))

// activationData is the template context for the activation mail.
type activationData struct {
	Name string
	Code string
}

// NewActivationMessage renders the activation email for a pending registration.
//
// # Parameters
//   - to: Recipient email address.
//   - name: Display name used in the greeting.
//   - code: Four-digit activation code, rendered verbatim.
func NewActivationMessage(to, name, code string) (Message, error) {
	var body strings.Builder

	err := activationTemplate.Execute(&body, activationData{Name: name, Code: code})
	if err != nil {
		return Message{}, fmt.Errorf("mail: render activation template: %w", err)
	}

	return Message{
		To:      to,
		Subject: "Activate your Edora account",
		Body:    body.String(),
	}, nil
}
