package server

import (
	"devswipe/internal/models"
	"devswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// sendFailureStatus maps expected send failures to HTTP statuses.
var sendFailureStatus = map[service.SendFailure]int{
	service.FailureReceiverNotFound:    fiber.StatusNotFound,
	service.FailureSelfMessageRejected: fiber.StatusBadRequest,
}

// UnreadCountResponse is the body of GET /api/chat/unread-count.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// MarkReadResponse is the body of the mark-as-read endpoint.
type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

// SendMessage handles POST /api/chat/messages
// @Summary Send a direct message
// @Description Creates the conversation on first contact. Not idempotent.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SendMessageInput true "Message"
// @Success 201 {object} service.SendResult
// @Failure 400 {object} models.ErrorResponse "Validation error or SelfMessageRejected"
// @Failure 404 {object} models.ErrorResponse "ReceiverNotFound"
// @Router /chat/messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req service.SendMessageInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.SenderID = callerID(c)

	res, err := s.chatService.SendMessage(c.UserContext(), req)
	if err != nil {
		return s.fail(c, err)
	}
	if !res.Success {
		status, ok := sendFailureStatus[res.Failure]
		if !ok {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(models.ErrorResponse{Error: res.Error, Code: string(res.Failure)})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// GetConversations handles GET /api/chat/conversations
// @Summary Conversation summaries
// @Description Most recently updated first, with unread counts per conversation
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ConversationSummary
// @Router /chat/conversations [get]
func (s *Server) GetConversations(c *fiber.Ctx) error {
	convs, err := s.chatService.GetConversations(c.UserContext(), callerID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(convs)
}

// GetMessages handles GET /api/chat/messages/:otherUserId
// @Summary Message history with another user
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param otherUserId path int true "Other participant"
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size (default 50, max 100)"
// @Success 200 {object} models.MessagePage
// @Router /chat/messages/{otherUserId} [get]
func (s *Server) GetMessages(c *fiber.Ctx) error {
	otherID, err := parseID(c, "otherUserId")
	if err != nil {
		return nil
	}
	page, err := s.chatService.GetConversationMessages(c.UserContext(), callerID(c), otherID,
		c.QueryInt("page", 0), c.QueryInt("size", 0))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(page)
}

// MarkMessagesAsRead handles POST /api/chat/messages/:otherUserId/mark-as-read
// @Summary Mark messages from another user as read
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param otherUserId path int true "Sender whose messages are read"
// @Success 200 {object} MarkReadResponse
// @Router /chat/messages/{otherUserId}/mark-as-read [post]
func (s *Server) MarkMessagesAsRead(c *fiber.Ctx) error {
	otherID, err := parseID(c, "otherUserId")
	if err != nil {
		return nil
	}
	n, err := s.chatService.MarkMessagesAsRead(c.UserContext(), callerID(c), otherID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(MarkReadResponse{Updated: n})
}

// GetUnreadCount handles GET /api/chat/unread-count
// @Summary Total unread messages
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UnreadCountResponse
// @Router /chat/unread-count [get]
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	n, err := s.chatService.GetUnreadCount(c.UserContext(), callerID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(UnreadCountResponse{UnreadCount: n})
}
