package registry

import "github.com/emmebi/gestione-ore/internal/domain/repository"

// TxRunner esegue fn con i repository legati a un'unica transazione: la
// rimozione di un dipendente dal registro e la pulizia delle sue giornate
// avvengono o tutte o nessuna.
type TxRunner interface {
	Run(fn func(employees repository.EmployeeRepository, records repository.DailyRecordRepository) error) error
}
