package services

import (
	"charitybridge/internal/metrics"
	"charitybridge/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserService         UserService
	DonationService     DonationService
	ClaimService        ClaimService
	MessageService      MessageService
	NotificationService NotificationService
	Notifier            Notifier
}

// Repositories groups the stateless repositories shared by services and
// background workers.
type Repositories struct {
	User         repositories.UserRepository
	Donation     repositories.DonationRepository
	Claim        repositories.ClaimRepository
	Message      repositories.MessageRepository
	Notification repositories.NotificationRepository
	Outbox       repositories.OutboxRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		User:         repositories.NewUserRepository(),
		Donation:     repositories.NewDonationRepository(),
		Claim:        repositories.NewClaimRepository(),
		Message:      repositories.NewMessageRepository(),
		Notification: repositories.NewNotificationRepository(),
		Outbox:       repositories.NewOutboxRepository(),
	}
}

// NewServiceContainer wires every service. wake is forwarded to the notifier.
func NewServiceContainer(repos *Repositories, m *metrics.Metrics, wake func()) *ServiceContainer {
	notifier := NewNotifier(repos.Outbox, wake)

	return &ServiceContainer{
		UserService:         NewUserService(repos.User),
		DonationService:     NewDonationService(repos.Donation),
		ClaimService:        NewClaimService(repos.Claim, repos.Donation, notifier, m),
		MessageService:      NewMessageService(repos.Message, repos.Claim, notifier, m),
		NotificationService: NewNotificationService(repos.Notification),
		Notifier:            notifier,
	}
}
