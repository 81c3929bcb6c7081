package entity

// Employee rappresenta un dipendente del tenant. L'ID è uno slug derivato dal
// nome e resta stabile per tutta la vita del dipendente (è la chiave dei suoi
// documenti giornalieri).
//
// La password è confrontata in chiaro: comportamento documentato del sistema
// originale, mantenuto tale e quale. Vedi DESIGN.md.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}
