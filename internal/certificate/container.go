package certificate

import "gorm.io/gorm"

type CertificateContainer struct {
	Repo    CertificateRepository
	Service CertificateService
	Handler *Handler
}

func NewCertificateContainer(db *gorm.DB, completion CompletionReader, notifier Notifier) *CertificateContainer {
	repo := NewRepository(db)
	service := NewService(repo, completion, notifier)

	return &CertificateContainer{
		Repo:    repo,
		Service: service,
		Handler: NewHandler(service),
	}
}
