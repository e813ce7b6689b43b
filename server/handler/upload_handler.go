package handler

import (
	"errors"
	"io/ioutil"
	"net/http"
	"strings"

	"llm-assessment-backend/domain/ingest"
	"llm-assessment-backend/logging"
	"llm-assessment-backend/metrics"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
)

func UploadFile(ctx *gin.Context) {
	handler := uploadFileHandler{
		ctx: ctx,
	}

	if err := handler.checkParam(); err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		var ue userError
		if errors.As(err, &ue) {
			ctx.JSON(http.StatusBadRequest, common.MakeErrorResp(string(ue)))
			return
		}
		ctx.JSON(http.StatusBadRequest, common.MakeUnknownErrorResp())
		return
	}

	resp, err := handler.produce()
	if err != nil {
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		var ue userError
		if errors.As(err, &ue) {
			ctx.JSON(http.StatusBadRequest, common.MakeErrorResp(string(ue)))
			return
		}
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(resp))
}

type uploadFileHandler struct {
	ctx *gin.Context

	// params
	fileName string
	fileData []byte
}

type uploadFileResp struct {
	FileID   uint   `json:"file_id"`
	RowCount int    `json:"row_count"`
	Message  string `json:"message"`
	Warning  string `json:"warning,omitempty"`
}

var allowedUploadExtensions = map[string]bool{
	"csv": true,
	"tsv": true,
	"txt": true,
}

func (h *uploadFileHandler) checkParam() error {
	contentType := h.ctx.GetHeader("Content-Type")
	if !strings.Contains(contentType, "multipart/form-data") {
		return utils.WrapErrorf(common.ErrContentTypeNotMultipartFormData,
			"actual Content-Type = [%s] not 'multipart/form-data'", contentType)
	}

	multipart, err := h.ctx.MultipartForm()
	if err != nil {
		return utils.WrapErrorf(err, "read multipart header fail")
	}

	fileHeaders := multipart.File["file"]

	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			return utils.WrapError(err, "open multipart file fail")
		}

		data, err := ioutil.ReadAll(file)
		if err != nil {
			return utils.WrapError(err, "read multipart file fail")
		}

		h.fileName = header.Filename
		h.fileData = data
	}

	if h.fileName == "" {
		return userError("No file selected")
	}

	if !allowedUploadExtensions[h.extension()] {
		return userError("Invalid file type. Please upload a CSV or TSV file.")
	}

	return nil
}

func (h *uploadFileHandler) produce() (*uploadFileResp, error) {
	user, err := currentReviewer(h.ctx)
	if err != nil {
		return nil, utils.WrapError(err, "read user info fail")
	}

	result := ingest.IngestFile(h.fileData, h.fileName, user.ReviewerID)
	if !result.OK {
		return nil, userError(result.Message)
	}

	metrics.UploadsTotal.Inc()
	metrics.RecordsIngestedTotal.Add(float64(result.RowCount))

	h.startReceipt(user.Email, result.RowCount)

	return &uploadFileResp{
		FileID:   result.BatchID,
		RowCount: result.RowCount,
		Message:  result.Message,
		Warning:  result.Warning,
	}, nil
}

func (h *uploadFileHandler) startReceipt(email string, rowCount int) {
	if email == "" {
		return
	}

	fileName := h.fileName
	go func() {
		if err := ingest.SendUploadReceipt(email, fileName, rowCount); err != nil {
			logging.Default().WithError(err).Errorf("send upload receipt error: %s", err.Error())
		}
	}()
}

func (h *uploadFileHandler) extension() string {
	index := strings.LastIndexByte(h.fileName, '.')
	if index < 0 {
		return ""
	}

	return strings.ToLower(h.fileName[index+1:])
}
