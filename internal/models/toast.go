package models

// ToastKind selects how a notification is styled
type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastWarning ToastKind = "warning"
	ToastError   ToastKind = "error"
)

// ToastMessage is a transient notification shown to the player. Never persisted.
type ToastMessage struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Kind    ToastKind `json:"kind"`
}
