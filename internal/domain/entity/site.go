package entity

// ConstructionSite rappresenta un cantiere: un'attività predefinita con un
// monte minuti standard. Il registro dei cantieri è indipendente da quello dei
// dipendenti (ciclo di vita separato).
type ConstructionSite struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	StandardMinutes int    `json:"minutes"` // minuti nominali del cantiere, >= 0
}
