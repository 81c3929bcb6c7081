package domain

import "errors"

// Errori di dominio (senza dipendenze esterne).
// I workflow li intercettano e li traducono in messaggi per l'utente; nessuno
// è fatale per il processo.
var (
	ErrNotFound       = errors.New("risorsa non trovata")
	ErrInvalidInput   = errors.New("dati non validi")
	ErrDuplicate      = errors.New("risorsa duplicata")
	ErrLoginFailed    = errors.New("credenziali non valide")
	ErrUnauthorized   = errors.New("non autorizzato")
	ErrForbidden      = errors.New("accesso negato")
	ErrSessionExpired = errors.New("sessione scaduta")
	ErrDateNotAllowed = errors.New("data non consentita")
	ErrTooManyEntries = errors.New("troppe attività nella giornata")
	ErrStaleSession   = errors.New("sessione di modifica non aggiornata")
)
