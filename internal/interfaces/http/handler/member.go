package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	membershipapp "github.com/fittrack/backend/internal/application/membership"
)

// MemberHandler handles member-related API endpoints
type MemberHandler struct {
	BaseHandler
	memberService *membershipapp.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *membershipapp.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Create registers a new gym member
func (h *MemberHandler) Create(c *gin.Context) {
	var req membershipapp.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, member)
}

// List returns a paginated list of members
func (h *MemberHandler) List(c *gin.Context) {
	var req listQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.applyDefaults()

	members, total, err := h.memberService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, members, total, req.Page, req.PageSize)
}

// Filter returns members matching status and plan filters
func (h *MemberHandler) Filter(c *gin.Context) {
	var filter membershipapp.MemberListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	members, err := h.memberService.Filter(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, members)
}

// Search returns members matching the search key across member ID, name,
// phone and email
func (h *MemberHandler) Search(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.BadRequest(c, "Search key is required")
		return
	}

	members, err := h.memberService.Search(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, members)
}

// GetByID returns a member by internal UUID
func (h *MemberHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}

// GetByMemberID returns a member by business member ID
func (h *MemberHandler) GetByMemberID(c *gin.Context) {
	memberID := c.Param("memberId")
	if memberID == "" {
		h.BadRequest(c, "Member ID is required")
		return
	}

	member, err := h.memberService.GetByMemberID(c.Request.Context(), memberID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}

// UpdateByID updates a member looked up by internal UUID
func (h *MemberHandler) UpdateByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	var req membershipapp.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.UpdateByID(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}

// UpdateByMemberID updates a member looked up by business member ID
func (h *MemberHandler) UpdateByMemberID(c *gin.Context) {
	memberID := c.Param("memberId")
	if memberID == "" {
		h.BadRequest(c, "Member ID is required")
		return
	}

	var req membershipapp.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.UpdateByMemberID(c.Request.Context(), memberID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}

// DeleteByID removes a member looked up by internal UUID
func (h *MemberHandler) DeleteByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	if err := h.memberService.DeleteByID(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteByMemberID removes a member looked up by business member ID
func (h *MemberHandler) DeleteByMemberID(c *gin.Context) {
	memberID := c.Param("memberId")
	if memberID == "" {
		h.BadRequest(c, "Member ID is required")
		return
	}

	if err := h.memberService.DeleteByMemberID(c.Request.Context(), memberID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
