package email

import "context"

// Email представляет одно исходящее письмо
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]any

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет письмо
	Send(ctx context.Context, email *Email) error

	// SendTemplate рендерит шаблон и отправляет результат
	SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}
