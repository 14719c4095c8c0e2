package entity

// EventProductUpdate se emite tras cualquier alta, cambio o baja de producto.
const EventProductUpdate = "product_update"

// ChangeEvent es el mensaje que reciben los clientes en tiempo real.
type ChangeEvent struct {
	Event string `json:"event"`
}
