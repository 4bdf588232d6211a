package models

// Categoria describes one entry of a domain's category registry.
type Categoria struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// CategoryNomina is the restaurant category that carries payroll fields.
const CategoryNomina = "nomina"

// EventCategories is the static registry for the events domain.
var EventCategories = []Categoria{
	{ID: "comida", Nombre: "Comida", Descripcion: "Recibos de comida para eventos"},
	{ID: "meseros", Nombre: "Meseros", Descripcion: "Pagos a personal de servicio"},
	{ID: "paquetes", Nombre: "Paquetes", Descripcion: "Paquetes de servicios"},
	{ID: "bebidas", Nombre: "Bebidas", Descripcion: "Bebidas para eventos"},
	{ID: "transporte", Nombre: "Transporte", Descripcion: "Pago furgón, gasolina, mantenimiento"},
	{ID: "auxiliares_cocina", Nombre: "Auxiliares de Cocina", Descripcion: "Personal auxiliar de cocina"},
	{ID: "decoracion", Nombre: "Decoración", Descripcion: "Elementos decorativos"},
	{ID: "lenceria", Nombre: "Lencería", Descripcion: "Manteles, servilletas, etc."},
	{ID: "musica", Nombre: "Música", Descripcion: "Servicios musicales y sonido"},
	{ID: "arriendo_bodega", Nombre: "Arriendo Bodega", Descripcion: "Arriendo de espacios de almacenamiento"},
}

// RestaurantCategories is the static registry for the restaurant domain.
var RestaurantCategories = []Categoria{
	{ID: "nomina", Nombre: "Nómina", Descripcion: "Salarios y pagos al personal"},
	{ID: "mercado", Nombre: "Mercado", Descripcion: "Compras de insumos y productos"},
	{ID: "arriendo_local", Nombre: "Arriendo Local", Descripcion: "Pago de arriendo del local del restaurante"},
}

// EventCategoryIDs returns the event category codes, in registry order.
func EventCategoryIDs() []string {
	return categoryIDs(EventCategories)
}

// RestaurantCategoryIDs returns the restaurant category codes, in registry order.
func RestaurantCategoryIDs() []string {
	return categoryIDs(RestaurantCategories)
}

func categoryIDs(cats []Categoria) []string {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}
