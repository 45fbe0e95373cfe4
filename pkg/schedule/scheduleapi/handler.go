package scheduleapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/luminahr/portal/pkg/iam"
	"github.com/luminahr/portal/pkg/kernel"
	"github.com/luminahr/portal/pkg/schedule"
	"github.com/luminahr/portal/pkg/schedule/schedulesrv"
)

const dayLayout = "2006-01-02"

// ScheduleHandlers endpoints internos de agendamiento. Toda la superficie
// exige un token con alcance de agendamiento de entrevistas.
type ScheduleHandlers struct {
	service  *schedulesrv.ScheduleService
	validate *validator.Validate
}

func NewScheduleHandlers(service *schedulesrv.ScheduleService) *ScheduleHandlers {
	return &ScheduleHandlers{
		service:  service,
		validate: validator.New(),
	}
}

func (h *ScheduleHandlers) RegisterRoutes(router fiber.Router, tokenMiddleware *iam.TokenMiddleware) {
	sched := router.Group("/schedule",
		tokenMiddleware.Authenticate(),
		tokenMiddleware.RequireScope(iam.ScopeInterviewsSchedule),
	)

	sched.Get("/week", h.GetWeek)
	sched.Get("/slot", h.GetSlot)
	sched.Post("/interviews", h.ScheduleInterview)
	sched.Get("/interviews/:id", h.GetInterview)

	sched.Get("/candidates", h.SearchCandidates)
	sched.Get("/positions", h.SearchPositions)
	sched.Get("/business-units", h.ListBusinessUnits)

	sched.Get("/questions", h.GetQuestions)
	sched.Post("/questions/shuffle", h.ShuffleQuestions)
}

// GetWeek retorna la grilla de la semana que contiene ?date (hoy por defecto)
func (h *ScheduleHandlers) GetWeek(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dayLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		date = parsed
	}

	week, err := h.service.GetWeek(c.Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(week)
}

// GetSlot consulta el estado de un slot puntual
func (h *ScheduleHandlers) GetSlot(c *fiber.Ctx) error {
	day, err := time.Parse(dayLayout, c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}
	slot := c.Query("time")

	interview, err := h.service.GetSlot(c.Context(), day, slot)
	if err != nil {
		return err
	}
	if interview == nil {
		return c.JSON(fiber.Map{"free": true})
	}
	return c.JSON(fiber.Map{"free": false, "interview": interview})
}

type scheduleInterviewRequest struct {
	Type          string   `json:"type" validate:"required,oneof=HR COMMITTEE BU"`
	Candidate     string   `json:"candidate" validate:"required"`
	Position      string   `json:"position" validate:"required"`
	BusinessUnits []string `json:"business_units" validate:"required_if=Type BU"`
	Location      string   `json:"location" validate:"required,oneof=VIDEO_CONFERENCE IN_PERSON PHONE_CALL"`
	Notes         string   `json:"notes"`
	Date          string   `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot      string   `json:"time_slot" validate:"required"`
}

// ScheduleInterview agenda una entrevista en un slot libre. El candidato
// y la posición deben existir en el directorio: el chip se considera
// bloqueado solo con coincidencia exacta.
func (h *ScheduleHandlers) ScheduleInterview(c *fiber.Ctx) error {
	var req scheduleInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	interviewType, err := schedule.ParseInterviewType(req.Type)
	if err != nil {
		return err
	}
	location, err := schedule.ParseLocation(req.Location)
	if err != nil {
		return err
	}

	candidates, err := h.service.SearchCandidates(c.Context(), req.Candidate)
	if err != nil {
		return err
	}
	candidate, ok := schedule.ExactMatch(candidates, req.Candidate)
	if !ok {
		return schedule.ErrCandidateNotMatched().WithDetail("candidate", req.Candidate)
	}

	positions, err := h.service.SearchPositions(c.Context(), req.Position)
	if err != nil {
		return err
	}
	position, ok := schedule.ExactMatch(positions, req.Position)
	if !ok {
		return schedule.ErrDraftIncomplete().
			WithDetail("position", req.Position).
			WithMessage("Job position must be selected from the open positions list")
	}

	draft := schedule.NewInterviewDraft().
		MatchCandidate(candidate).
		MatchPosition(position)
	draft.Type = interviewType
	draft.Location = location
	draft.Notes = req.Notes
	for _, unit := range req.BusinessUnits {
		draft = draft.AddBusinessUnit(unit)
	}

	day, err := time.Parse(dayLayout, req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	record, err := h.service.ScheduleInterview(c.Context(), draft, day, req.TimeSlot)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *ScheduleHandlers) GetInterview(c *fiber.Ctx) error {
	interview, err := h.service.GetInterview(c.Context(), kernel.InterviewID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(interview)
}

func (h *ScheduleHandlers) SearchCandidates(c *fiber.Ctx) error {
	names, err := h.service.SearchCandidates(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"candidates": names})
}

func (h *ScheduleHandlers) SearchPositions(c *fiber.Ctx) error {
	titles, err := h.service.SearchPositions(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"positions": titles})
}

func (h *ScheduleHandlers) ListBusinessUnits(c *fiber.Ctx) error {
	units, err := h.service.ListBusinessUnits(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"business_units": units})
}

func (h *ScheduleHandlers) GetQuestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"questions": h.service.Questions()})
}

type shuffleRequest struct {
	Questions []string `json:"questions" validate:"required,min=1"`
}

func (h *ScheduleHandlers) ShuffleQuestions(c *fiber.Ctx) error {
	var req shuffleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"questions": h.service.ShuffleQuestions(req.Questions)})
}
