package applyapi

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/luminahr/portal/pkg/apply"
	"github.com/luminahr/portal/pkg/apply/applysrv"
	"github.com/luminahr/portal/pkg/cvparse"
	"github.com/luminahr/portal/pkg/kernel"
)

// DraftHandlers endpoints públicos del asistente de postulación. El
// candidato se identifica por el ID de borrador en la ruta; no hay
// autenticación en esta superficie.
type DraftHandlers struct {
	service *applysrv.DraftService
	parser  cvparse.Parser
}

func NewDraftHandlers(service *applysrv.DraftService, parser cvparse.Parser) *DraftHandlers {
	return &DraftHandlers{service: service, parser: parser}
}

func (h *DraftHandlers) RegisterRoutes(router fiber.Router) {
	drafts := router.Group("/drafts")

	drafts.Post("/", h.OpenDraft)
	drafts.Get("/:id", h.GetDraft)
	drafts.Delete("/:id", h.DiscardDraft)
	drafts.Get("/:id/validity", h.GetStepValidity)
	drafts.Get("/:id/last-application", h.GetLastApplicationID)

	drafts.Put("/:id/personal/:field", h.SetPersonalField)
	drafts.Put("/:id/practical-experience", h.SetPracticalExperience)

	drafts.Post("/:id/sections/:section", h.AppendEntry)
	drafts.Put("/:id/sections/:section/:index/:field", h.UpdateEntryField)
	drafts.Delete("/:id/sections/:section/:index", h.RemoveEntry)

	drafts.Post("/:id/next", h.Next)
	drafts.Post("/:id/previous", h.Previous)
	drafts.Post("/:id/step/:step", h.GoToStep)

	drafts.Post("/:id/cv", h.UploadCV)
	drafts.Delete("/:id/cv", h.RemoveCV)
	drafts.Post("/:id/cv/parse", h.ParseCV)
	drafts.Post("/:id/video", h.UploadVideo)
	drafts.Delete("/:id/video", h.RemoveVideo)

	drafts.Post("/:id/camera/active", h.MarkCameraActive)
	drafts.Post("/:id/camera/stop", h.StopCamera)

	drafts.Post("/:id/submit", h.Submit)
}

// ============================================================================
// Apertura y lectura
// ============================================================================

type openDraftRequest struct {
	DraftID string `json:"draft_id"`
	Step    string `json:"step"`
	// offre_id es el nombre canónico; offerId se acepta como alias histórico
	OfferID    string `json:"offre_id"`
	OfferIDAlt string `json:"offerId"`
}

// OpenDraft restaura o crea el borrador, aplicando una única vez los
// parámetros de deep link que traiga la request.
func (h *DraftHandlers) OpenDraft(c *fiber.Ctx) error {
	var req openDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id := kernel.DraftID(req.DraftID)
	if id == "" {
		id = kernel.NewDraftID()
	}

	offerID := req.OfferID
	if offerID == "" {
		offerID = req.OfferIDAlt
	}

	draft, err := h.service.OpenDraft(c.Context(), id, apply.DeepLink{
		Step:    req.Step,
		OfferID: offerID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *DraftHandlers) GetDraft(c *fiber.Ctx) error {
	draft, err := h.service.GetDraft(c.Context(), kernel.DraftID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

func (h *DraftHandlers) DiscardDraft(c *fiber.Ctx) error {
	if err := h.service.DiscardDraft(c.Context(), kernel.DraftID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DraftHandlers) GetStepValidity(c *fiber.Ctx) error {
	validity, err := h.service.StepValidity(c.Context(), kernel.DraftID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"steps": validity})
}

func (h *DraftHandlers) GetLastApplicationID(c *fiber.Ctx) error {
	appID, err := h.service.LastApplicationID(c.Context(), kernel.DraftID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"application_id": appID})
}

// ============================================================================
// Edición
// ============================================================================

type valueRequest struct {
	Value string `json:"value"`
}

func (h *DraftHandlers) SetPersonalField(c *fiber.Ctx) error {
	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	draft, err := h.service.SetPersonalField(c.Context(), kernel.DraftID(c.Params("id")), c.Params("field"), req.Value)
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

func (h *DraftHandlers) SetPracticalExperience(c *fiber.Ctx) error {
	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	draft, err := h.service.SetPracticalExperience(c.Context(), kernel.DraftID(c.Params("id")), req.Value)
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

func (h *DraftHandlers) AppendEntry(c *fiber.Ctx) error {
	section, err := apply.ParseSection(c.Params("section"))
	if err != nil {
		return err
	}

	draft, err := h.service.AppendEntry(c.Context(), kernel.DraftID(c.Params("id")), section)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *DraftHandlers) UpdateEntryField(c *fiber.Ctx) error {
	section, err := apply.ParseSection(c.Params("section"))
	if err != nil {
		return err
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry index"})
	}

	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	draft, err := h.service.UpdateEntryField(c.Context(), kernel.DraftID(c.Params("id")), section, index, c.Params("field"), req.Value)
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

func (h *DraftHandlers) RemoveEntry(c *fiber.Ctx) error {
	section, err := apply.ParseSection(c.Params("section"))
	if err != nil {
		return err
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry index"})
	}

	draft, err := h.service.RemoveEntry(c.Context(), kernel.DraftID(c.Params("id")), section, index)
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

// ============================================================================
// Navegación
// ============================================================================

func (h *DraftHandlers) Next(c *fiber.Ctx) error {
	draft, err := h.service.Next(c.Context(), kernel.DraftID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

func (h *DraftHandlers) Previous(c *fiber.Ctx) error {
	draft, err := h.service.Previous(c.Context(), kernel.DraftID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

func (h *DraftHandlers) GoToStep(c *fiber.Ctx) error {
	step, err := c.ParamsInt("step")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid step"})
	}

	draft, err := h.service.GoToStep(c.Context(), kernel.DraftID(c.Params("id")), step)
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

// ============================================================================
// Archivos
// ============================================================================

func (h *DraftHandlers) UploadCV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apply.ErrNoFileAttached()
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apply.ErrNoFileAttached()
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}

	draft, err := h.service.AttachCV(c.Context(), kernel.DraftID(c.Params("id")),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *DraftHandlers) RemoveCV(c *fiber.Ctx) error {
	draft, err := h.service.DetachCV(c.Context(), kernel.DraftID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

// ParseCV extrae campos del CV adjunto para prellenar el formulario
func (h *DraftHandlers) ParseCV(c *fiber.Ctx) error {
	draft, err := h.service.GetDraft(c.Context(), kernel.DraftID(c.Params("id")))
	if err != nil {
		return err
	}
	if !draft.CV.HasContent() {
		return apply.ErrNoFileAttached().WithDetail("reason", "cv content not available in this session")
	}

	fields, err := h.parser.Parse(c.Context(), draft.CV.Bytes, draft.CV.MimeType)
	if err != nil {
		return err
	}
	return c.JSON(fields)
}

func (h *DraftHandlers) UploadVideo(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apply.ErrNoFileAttached()
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apply.ErrNoFileAttached()
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}

	draft, err := h.service.AttachVideo(c.Context(), kernel.DraftID(c.Params("id")),
		fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *DraftHandlers) RemoveVideo(c *fiber.Ctx) error {
	draft, err := h.service.DetachVideo(c.Context(), kernel.DraftID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

// ============================================================================
// Cámara
// ============================================================================

type cameraActiveRequest struct {
	Active bool `json:"active"`
}

func (h *DraftHandlers) MarkCameraActive(c *fiber.Ctx) error {
	var req cameraActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.MarkCameraActive(c.Context(), kernel.DraftID(c.Params("id")), req.Active); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"active": req.Active})
}

func (h *DraftHandlers) StopCamera(c *fiber.Ctx) error {
	if err := h.service.StopCamera(c.Context(), kernel.DraftID(c.Params("id"))); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Camera stop signal sent"})
}

// ============================================================================
// Envío
// ============================================================================

// Submit envía la postulación. La respuesta siempre es 200: el resultado
// (éxito o mensaje de error para el candidato) viaja en el cuerpo.
func (h *DraftHandlers) Submit(c *fiber.Ctx) error {
	result, draft, err := h.service.Submit(c.Context(), kernel.DraftID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"result": result,
		"draft":  draft,
	})
}
