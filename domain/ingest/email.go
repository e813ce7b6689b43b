package ingest

import (
	"fmt"

	"llm-assessment-backend/utils"
	emailutils "llm-assessment-backend/utils/email"
)

const uploadReceiptHTMLTemplate = `
<h1>Upload processed</h1>
<p>File: %s</p>
<p>Responses imported: %d</p>

<p></p>
<p>Open the assessment view to start reviewing.</p>
`

// SendUploadReceipt 入库成功后给上传者发一封回执邮件。
func SendUploadReceipt(email, filename string, rowCount int) error {
	if !emailutils.Enabled() {
		return nil
	}

	err := emailutils.SendHtml(email, "[LLM Assessment] Upload processed", renderUploadReceipt(filename, rowCount))
	if err != nil {
		return utils.WrapErrorf(err, "send email to [%s] fail", email)
	}

	return nil
}

func renderUploadReceipt(filename string, rowCount int) string {
	return fmt.Sprintf(uploadReceiptHTMLTemplate, filename, rowCount)
}
