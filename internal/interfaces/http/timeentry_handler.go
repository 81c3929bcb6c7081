package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/emmebi/gestione-ore/internal/application/dto"
	"github.com/emmebi/gestione-ore/internal/application/timeentry"
	"github.com/emmebi/gestione-ore/internal/domain"
	"github.com/emmebi/gestione-ore/pkg/jwt"
)

// TimeEntryHandler espone il flusso di inserimento ore del dipendente.
// Le sessioni di modifica vivono in memoria, una per coppia
// (dipendente, data): la stessa coppia riusa la sessione aperta così
// l'autosalvataggio differito sopravvive tra una richiesta e l'altra.
type TimeEntryHandler struct {
	uc *timeentry.UseCase

	mu       sync.Mutex
	sessions map[string]*timeentry.DaySession
}

// NewTimeEntryHandler costruisce l'handler dell'inserimento ore.
func NewTimeEntryHandler(uc *timeentry.UseCase) *TimeEntryHandler {
	return &TimeEntryHandler{uc: uc, sessions: make(map[string]*timeentry.DaySession)}
}

func sessionKey(employeeID, date string) string { return employeeID + "|" + date }

// session restituisce la sessione aperta per (dipendente, data) oppure ne
// apre una nuova. Un'altra giornata aperta dallo stesso dipendente viene
// prima salvata e chiusa: si lavora su un giorno alla volta.
func (h *TimeEntryHandler) session(employeeID, date string, anyDate bool) (*timeentry.DaySession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := sessionKey(employeeID, date)
	if s, ok := h.sessions[key]; ok {
		return s, nil
	}
	for k, s := range h.sessions {
		if s.EmployeeID == employeeID {
			_ = h.uc.Save(s)
			delete(h.sessions, k)
		}
	}
	s, err := h.uc.Open(employeeID, date, anyDate)
	if err != nil {
		return nil, err
	}
	h.sessions[key] = s
	return s, nil
}

// invalidate chiude la sessione di (dipendente, data) se presente. Usata
// quando l'amministratore sovrascrive la giornata: la sessione del
// dipendente sarebbe ormai basata su dati vecchi.
func (h *TimeEntryHandler) invalidate(employeeID, date string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := sessionKey(employeeID, date)
	if s, ok := h.sessions[key]; ok {
		s.Close()
		delete(h.sessions, key)
	}
}

func (h *TimeEntryHandler) openForRequest(c *fiber.Ctx) (*timeentry.DaySession, error) {
	// L'amministratore può aprire qualsiasi data; il dipendente solo oggi
	// o ieri.
	anyDate := GetUserRole(c) == jwt.RoleAdmin
	return h.session(GetUserID(c), c.Params("date"), anyDate)
}

func openError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data non valida (atteso YYYY-MM-DD)"})
	}
	if err == domain.ErrDateNotAllowed {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "DATE_NOT_ALLOWED", Message: "è possibile registrare ore solo per oggi o ieri"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// GetDay godoc
// @Summary      Giornata del dipendente autenticato
// @Tags         days
// @Produce      json
// @Param        date  path  string  true  "data YYYY-MM-DD"
// @Success      200   {object}  dto.DayResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/days/{date} [get]
func (h *TimeEntryHandler) GetDay(c *fiber.Ctx) error {
	s, err := h.openForRequest(c)
	if err != nil {
		return openError(c, err)
	}
	return c.JSON(h.uc.Day(s))
}

// SetStatus godoc
// @Summary      Cambia lo stato della giornata
// @Tags         days
// @Accept       json
// @Produce      json
// @Param        date  path  string  true  "data YYYY-MM-DD"
// @Param        body  body  dto.SetStatusRequest  true  "Normale | Riposo | Ferie | Malattia"
// @Success      200   {object}  dto.DayResponse
// @Router       /api/days/{date}/status [put]
func (h *TimeEntryHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	s, err := h.openForRequest(c)
	if err != nil {
		return openError(c, err)
	}
	if err := h.uc.SetStatus(s, in.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stato non riconosciuto"})
	}
	return c.JSON(h.uc.Day(s))
}

// AddSiteActivity godoc
// @Summary      Aggiunge un cantiere alla giornata
// @Tags         days
// @Accept       json
// @Produce      json
// @Param        date  path  string  true  "data YYYY-MM-DD"
// @Param        body  body  dto.AddSiteActivityRequest  true  "site_id, people_count"
// @Success      201   {object}  dto.ActivityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/days/{date}/activities/cantiere [post]
func (h *TimeEntryHandler) AddSiteActivity(c *fiber.Ctx) error {
	var in dto.AddSiteActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	s, err := h.openForRequest(c)
	if err != nil {
		return openError(c, err)
	}
	activity, err := h.uc.AddSiteActivity(s, in.SiteID, in.PeopleCount)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero persone tra 1 e 50"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cantiere non trovato"})
		}
		if err == domain.ErrTooManyEntries {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "TOO_MANY", Message: "limite di attività per giornata raggiunto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToActivityResponse(activity))
}

// AddGenericActivity godoc
// @Summary      Aggiunge un'attività PST alla giornata
// @Tags         days
// @Accept       json
// @Produce      json
// @Param        date  path  string  true  "data YYYY-MM-DD"
// @Param        body  body  dto.AddGenericActivityRequest  true  "name, minutes, people_count"
// @Success      201   {object}  dto.ActivityResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/days/{date}/activities/pst [post]
func (h *TimeEntryHandler) AddGenericActivity(c *fiber.Ctx) error {
	var in dto.AddGenericActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	s, err := h.openForRequest(c)
	if err != nil {
		return openError(c, err)
	}
	activity, err := h.uc.AddGenericActivity(s, in.Name, in.Minutes, in.PeopleCount)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nome richiesto, minuti 0-1440, persone 1-50"})
		}
		if err == domain.ErrTooManyEntries {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "TOO_MANY", Message: "limite di attività per giornata raggiunto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToActivityResponse(activity))
}

// UpdateActivity godoc
// @Summary      Modifica minuti o persone di un'attività
// @Tags         days
// @Accept       json
// @Produce      json
// @Param        date        path  string  true  "data YYYY-MM-DD"
// @Param        activityId  path  string  true  "ID attività"
// @Param        body        body  dto.UpdateActivityRequest  true  "field (minuti|persone), value"
// @Success      200   {object}  dto.DayResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/days/{date}/activities/{activityId} [patch]
func (h *TimeEntryHandler) UpdateActivity(c *fiber.Ctx) error {
	var in dto.UpdateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	s, err := h.openForRequest(c)
	if err != nil {
		return openError(c, err)
	}
	if err := h.uc.UpdateActivity(s, c.Params("activityId"), in.Field, in.Value); err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo o valore fuori range; l'attività non è stata modificata"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "attività non trovata"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(h.uc.Day(s))
}

// RemoveActivity godoc
// @Summary      Elimina un'attività dalla giornata
// @Tags         days
// @Produce      json
// @Param        date        path  string  true  "data YYYY-MM-DD"
// @Param        activityId  path  string  true  "ID attività"
// @Success      200   {object}  dto.DayResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/days/{date}/activities/{activityId} [delete]
func (h *TimeEntryHandler) RemoveActivity(c *fiber.Ctx) error {
	s, err := h.openForRequest(c)
	if err != nil {
		return openError(c, err)
	}
	if err := h.uc.RemoveActivity(s, c.Params("activityId")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "attività non trovata"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(h.uc.Day(s))
}

// SaveDay godoc
// @Summary      Salvataggio immediato della giornata
// @Tags         days
// @Produce      json
// @Param        date  path  string  true  "data YYYY-MM-DD"
// @Success      200   {object}  dto.SaveStateResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/days/{date}/save [post]
func (h *TimeEntryHandler) SaveDay(c *fiber.Ctx) error {
	s, err := h.openForRequest(c)
	if err != nil {
		return openError(c, err)
	}
	if err := h.uc.Save(s); err != nil {
		if err == domain.ErrStaleSession {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STALE_SESSION", Message: "la sessione si riferisce a un'altra giornata, ricaricare"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	state, lastSaved := s.SaveState()
	return c.JSON(dto.SaveStateResponse{State: state, LastSaved: lastSaved})
}

// SaveStateHandler godoc
// @Summary      Stato del salvataggio (idle/saving/saved/failed)
// @Tags         days
// @Produce      json
// @Param        date  path  string  true  "data YYYY-MM-DD"
// @Success      200   {object}  dto.SaveStateResponse
// @Router       /api/days/{date}/state [get]
func (h *TimeEntryHandler) SaveStateHandler(c *fiber.Ctx) error {
	s, err := h.openForRequest(c)
	if err != nil {
		return openError(c, err)
	}
	state, lastSaved := s.SaveState()
	return c.JSON(dto.SaveStateResponse{State: state, LastSaved: lastSaved})
}

// AdminGetDay godoc
// @Summary      Giornata di un dipendente, qualsiasi data (admin)
// @Tags         admin
// @Produce      json
// @Param        id    path  string  true  "ID dipendente"
// @Param        date  path  string  true  "data YYYY-MM-DD"
// @Success      200   {object}  dto.DayResponse
// @Router       /api/admin/employees/{id}/days/{date} [get]
func (h *TimeEntryHandler) AdminGetDay(c *fiber.Ctx) error {
	// Lettura diretta senza sessione: l'admin non edita in modo incrementale.
	s, err := h.uc.Open(c.Params("id"), c.Params("date"), true)
	if err != nil {
		return openError(c, err)
	}
	defer s.Close()
	return c.JSON(h.uc.Day(s))
}

// AdminReplaceDay godoc
// @Summary      Sovrascrive l'intera giornata di un dipendente (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID dipendente"
// @Param        date  path  string  true  "data YYYY-MM-DD"
// @Param        body  body  dto.ReplaceDayRequest  true  "status, activities"
// @Success      200   {object}  dto.DayResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/admin/employees/{id}/days/{date} [put]
func (h *TimeEntryHandler) AdminReplaceDay(c *fiber.Ctx) error {
	var in dto.ReplaceDayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	employeeID, date := c.Params("id"), c.Params("date")
	out, err := h.uc.ReplaceDay(employeeID, date, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "giornata non valida, nessuna modifica applicata"})
		}
		if err == domain.ErrTooManyEntries {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "TOO_MANY", Message: "limite di attività per giornata raggiunto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// Le eventuali modifiche non salvate del dipendente sono superate.
	h.invalidate(employeeID, date)
	return c.JSON(out)
}
