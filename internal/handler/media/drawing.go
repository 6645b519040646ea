package media

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
	"slpece/internal/pkg/svgpath"
	"slpece/internal/service"
)

// SaveDrawingRequest 保存画板请求
type SaveDrawingRequest struct {
	UserID      string           `json:"user_id" binding:"required"`
	Width       float64          `json:"width" binding:"omitempty,gt=0"`
	Height      float64          `json:"height" binding:"omitempty,gt=0"`
	StrokeColor string           `json:"stroke_color"`
	StrokeWidth float64          `json:"stroke_width" binding:"omitempty,gt=0"`
	Strokes     []svgpath.Stroke `json:"strokes"`
}

// SaveDrawing 保存画板作品为 SVG
// @Summary      保存画板
// @Tags         画板
// @Accept       json
// @Produce      json
// @Param        request  body      SaveDrawingRequest  true  "笔画"
// @Success      201      {object}  httpPkg.SuccessResponse
// @Failure      400      {object}  httpPkg.ErrorResponse
// @Router       /drawings [post]
func (h *Handler) SaveDrawing(c *gin.Context) {
	var req SaveDrawingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	result, err := h.drawingService.SaveDrawing(c.Request.Context(), &service.SaveDrawingRequest{
		UserID:  req.UserID,
		Strokes: req.Strokes,
		Style: svgpath.Style{
			Width:       req.Width,
			Height:      req.Height,
			StrokeColor: req.StrokeColor,
			StrokeWidth: req.StrokeWidth,
		},
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusCreated, "Drawing saved", result)
}

// GetDrawing 读取已保存的 SVG 作品
// @Summary      读取画板作品
// @Tags         画板
// @Produce      image/svg+xml
// @Param        user_id     path  string  true  "用户ID"
// @Param        drawing_id  path  string  true  "作品ID"
// @Success      200
// @Failure      404  {object}  httpPkg.ErrorResponse
// @Router       /drawings/{user_id}/{drawing_id} [get]
func (h *Handler) GetDrawing(c *gin.Context) {
	data, err := h.drawingService.GetDrawing(c.Request.Context(), c.Param("user_id"), c.Param("drawing_id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", data)
}

// DeleteDrawing 删除画板作品
// @Summary      删除画板作品
// @Tags         画板
// @Produce      json
// @Param        user_id     path  string  true  "用户ID"
// @Param        drawing_id  path  string  true  "作品ID"
// @Success      200  {object}  httpPkg.SuccessResponse
// @Failure      404  {object}  httpPkg.ErrorResponse
// @Router       /drawings/{user_id}/{drawing_id} [delete]
func (h *Handler) DeleteDrawing(c *gin.Context) {
	if err := h.drawingService.DeleteDrawing(c.Request.Context(), c.Param("user_id"), c.Param("drawing_id")); err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "Drawing deleted", nil)
}
