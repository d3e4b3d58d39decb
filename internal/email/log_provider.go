package email

import (
	"context"

	"charitybridge/internal/logger"
)

// LogProvider пишет письма в лог вместо отправки. Используется, когда SMTP
// выключен в конфигурации.
type LogProvider struct {
	renderer *TemplateManager
}

func NewLogProvider(renderer *TemplateManager) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "email suppressed", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error {
	if _, _, err := p.renderer.Render(templateName, data); err != nil {
		return err
	}
	return p.Send(ctx, &Email{To: to, Subject: subject})
}

func (p *LogProvider) Validate() error { return nil }
