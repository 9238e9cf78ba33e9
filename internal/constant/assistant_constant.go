package constant

// Conversation modes
const (
	ModeChat         = "chat"
	ModeEmail        = "email"
	ModeDataAnalysis = "data_analysis"
	ModeAnalyzeImage = "analyze_image"
)

// Email workflow stages
const (
	EmailStageNone    = ""
	EmailStageInit    = "init"
	EmailStageReview  = "review"
	EmailStageModify  = "modify"
	EmailStageConfirm = "confirm"
)

// User-facing replies. Kept in one place so the JSON endpoint, the SSE endpoint
// and the console loop stay word-for-word identical.
const (
	ReplyEmailIntro          = "I'll help you with sending an email. Please provide a description for the email you want to send:"
	ReplyEmailAskRecipient   = "Please provide the recipient's email address:"
	ReplyEmailAskSuggestions = "Please provide your suggestions for modifications:"
	ReplyEmailCancelled      = "Email workflow cancelled. Returning to general chat."
	ReplyEmailInvalidChoice  = "Invalid response. Reply with 'yes', 'change', or 'cancel'."
	ReplyEmailSent           = "Email sent successfully!"

	ReplyEmailReviewOptions        = "Reply with 'yes' to send, 'change' to modify, or 'cancel' to abort the email workflow."
	ReplyEmailReviewOptionsFurther = "Reply with 'yes' to send, 'change' to modify further, or 'cancel' to abort the email workflow."

	ReplyEmailGenerateFailed = "Failed to generate the email draft. Please describe the email again:"
	ReplyEmailModifyFailed   = "Failed to modify the email draft. Please provide your suggestions again:"

	ReplyAnalyzeIntro   = "I'll help you analyze your data. Please provide the path to your CSV or Excel file:"
	ReplyAnalyzeAskPath = "Please provide the path to your CSV or Excel file:"

	ReplyAnalyzeImageIntro = "I'll help you analyze a breast MRI scan. Please upload an image file (PNG, JPG, JPEG, or DICOM format):"
	ReplyAnalyzeImageAgain = "Please upload an image file for analysis."

	ReplyDocumentSaved = "Document generated successfully!"
	ReplyNothingToSave = "No recent response available to save."

	ReplyAttachmentAck    = "File uploaded successfully."
	ReplyChatUnavailable  = "Sorry, I couldn't generate a response. Please try again."
	ReplyImageUnavailable = "Image analysis failed. Please upload the image again."
)

// Streaming delivery parameters: fragment size in runes and the artificial
// pacing delay between fragments.
const (
	StreamChunkSize    = 20
	StreamChunkDelayMs = 40
	StreamEndMarker    = "[DONE]"
)
