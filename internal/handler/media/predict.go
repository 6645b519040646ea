package media

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// Predict 动物识别
// @Summary      动物识别
// @Description  将图片转发给识别模型，返回 {prediction, confidence}
// @Tags         识别
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "图片"
// @Success      200    {object}  httpPkg.SuccessResponse
// @Failure      400    {object}  httpPkg.ErrorResponse
// @Failure      502    {object}  httpPkg.ErrorResponse
// @Router       /predict [post]
func (h *Handler) Predict(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		httpPkg.Fail(c, http.StatusBadRequest, httpPkg.CodeBadRequest, "image is required", err.Error())
		return
	}
	if fileHeader.Size > maxImageSize {
		httpPkg.Fail(c, http.StatusBadRequest, httpPkg.CodeBadRequest, "image is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpPkg.Fail(c, http.StatusBadRequest, httpPkg.CodeBadRequest, "failed to read image", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		httpPkg.Fail(c, http.StatusBadRequest, httpPkg.CodeBadRequest, "failed to read image", err.Error())
		return
	}

	result, err := h.recognitionService.Recognize(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", result)
}
