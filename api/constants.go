package api

const (
	// DefaultMaxFileSize is the default maximum upload size per file (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultCanvasName is the default merge canvas
	DefaultCanvasName = "A4"

	// DefaultMaxConcurrentJobs is how many merge/split operations run at once
	DefaultMaxConcurrentJobs = 1
)

// Messages returned to clients
const (
	MsgNoFile          = "No PDF file provided"
	MsgNotPDF          = "Only PDF files are supported"
	MsgBusy            = "Another operation is already in progress."
	MsgOperationFailed = "Something went wrong while processing your files. Please try again."
	MsgUnknownCanvas   = "Unknown canvas size"
	MsgBadTotalPages   = "total_pages must be a non-negative integer"
)
