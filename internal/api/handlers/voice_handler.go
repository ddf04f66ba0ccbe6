package handlers

import (
	"Food-Tracker/domain"
	"Food-Tracker/internal/api/presenters"
	"Food-Tracker/pkg/assistant"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	VoiceHandler interface {
		HandleTranscript(c *fiber.Ctx) error
		HandleAudio(c *fiber.Ctx) error
		VoiceTest(c *fiber.Ctx) error
	}

	voiceHandler struct {
		assistantService assistant.AssistantService
		validator        *validator.Validate
	}
)

func NewVoiceHandler(assistantService assistant.AssistantService, validator *validator.Validate) VoiceHandler {
	return &voiceHandler{
		assistantService: assistantService,
		validator:        validator,
	}
}

func (h *voiceHandler) HandleTranscript(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.VoiceTranscriptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVoiceTranscript, err)
	}

	res, err := h.assistantService.HandleTranscript(c.UserContext(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedVoiceTranscript, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessVoiceTranscript)
}

func (h *voiceHandler) HandleAudio(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.VoiceAudioRequest)

	file, err := c.FormFile("audio")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVoiceAudio, domain.ErrAudioMissing)
	}
	req.Audio = file
	req.AutoSubmit = c.FormValue("auto_submit") == "true"

	res, err := h.assistantService.ProcessAudio(c.UserContext(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedVoiceAudio, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessVoiceAudio)
}

// VoiceTest returns a fixed sample so clients can check the response shape
// without recording anything.
func (h *voiceHandler) VoiceTest(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, domain.VoiceResponse{
		Transcript: "test latte 5 giorni",
		Kind:       domain.VoiceKindFood,
		ParsedData: &domain.ParsedFoodData{
			Name:         "latte",
			Category:     "Latticini",
			DaysToExpiry: 5,
		},
	}, fiber.StatusOK, domain.MessageSuccessVoiceTranscript)
}
