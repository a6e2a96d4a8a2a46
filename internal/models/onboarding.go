package models

import "time"

type OnboardingStatus string

const (
	StatusRequested  OnboardingStatus = "REQUESTED"
	StatusInProgress OnboardingStatus = "IN_PROGRESS"
	StatusCompleted  OnboardingStatus = "COMPLETED"
	StatusRejected   OnboardingStatus = "REJECTED"
)

type Onboarding struct {
	ID           string           `json:"id"`
	Nombre       string           `json:"nombre"`
	Documento    string           `json:"documento"`
	Email        string           `json:"email"`
	MontoInicial float64          `json:"montoInicial"`
	Status       OnboardingStatus `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
