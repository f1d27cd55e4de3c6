package entity

import "time"

// Category representa una categoría de productos. No puede eliminarse
// mientras tenga productos asociados.
type Category struct {
	ID          string
	Name        string // único (sin distinguir mayúsculas)
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
