package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	DonationHandler     *DonationHandler
	ClaimHandler        *ClaimHandler
	MessageHandler      *MessageHandler
	NotificationHandler *NotificationHandler
	HealthHandler       *HealthHandler
}
