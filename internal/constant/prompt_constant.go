package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// IntentPrompt is the few-shot classification prompt. The user input is appended
// by the classifier; the model must answer with exactly one label word.
const IntentPrompt = `You are an intent detection assistant for a virtual AI agent. Your task is to understand the user's intent based on their input. The user may want to either send an email, save the assistant's response into a document, analyze data from a file, analyze a breast MRI scan image, or simply engage in a normal chat.

Your job is to classify the intent into ONE of the following categories by responding with only one word:
- 'email' -> If the user is trying to draft, compose, send, or discuss sending an email.
- 'save' -> If the user wants to save the assistant's response as a report, note, document, summary, or file.
- 'analyze' -> If the user wants to analyze data, upload a file for analysis, or get insights from data.
- 'analyze_image' -> If the user wants to analyze a breast MRI scan image or upload an image for analysis.
- 'normal' -> For all general queries or conversational input that do not involve the above intents.

Here are examples to guide your judgment:
Example 1: I want to send an update to my boss about the project -> email
Example 2: Can you create a summary report and save it for me? -> save
Example 3: Tell me a joke -> normal
Example 4: Generate an email to HR about my resignation -> email
Example 5: Save this summary to a text file -> save
Example 6: What's the capital of France? -> normal
Example 7: Email a proposal to the client -> email
Example 8: Store this conversation in a file -> save
Example 9: Who won the cricket match yesterday? -> normal
Example 10: I want to download this response -> save
Example 11: Can you analyze this CSV file for me? -> analyze
Example 12: I want to upload an Excel file for data insights -> analyze
Example 13: Help me understand this dataset -> analyze
Example 14: What insights can you get from this data? -> analyze
Example 15: I need to analyze some sales data -> analyze
Example 16: Can you analyze this breast MRI scan? -> analyze_image
Example 17: I want to upload an MRI image for analysis -> analyze_image
Example 18: What stage is this breast cancer scan showing? -> analyze_image
Example 19: Please analyze this medical image -> analyze_image
Example 20: Tell me about this breast MRI scan -> analyze_image

Now analyze the following user input:
User Input: %s

Your response (only one word - email, save, analyze, analyze_image, or normal):`

// ScanAnalysisPrompt drives the first vision pass over an uploaded scan.
const ScanAnalysisPrompt = `You are a medical AI Vision-Language assistant specialized in analyzing breast cancer medical images and generating diagnostic insights.

Your task is to:
1. Accurately analyze the uploaded breast scan image.
2. Identify and classify the cancer stage as one of the following:
- Preliminary Stage
- Middle Stage
- Final Stage
3. Provide a concise medical explanation justifying your stage classification based on visual markers observed in the image (e.g., tumor size, lymph node involvement, tissue structure, etc.).
4. Based on the identified stage, follow these outputs:
- If Preliminary Stage: provide key precautionary measures based on standard medical guidelines to prevent cancer progression.
- If Middle or Final Stage: provide an analysis of the cancer progression, and suggest medically recommended treatment strategies or recovery plans aligned with current oncology practices.

Your output should be clear, accurate, medically relevant, and ready to be included in a structured report. Avoid speculative language. Do not generate treatment or medical advice outside of recognized guidelines.`

// MarkdownReportPrompt drives the second pass that reformats the structured
// analysis; the plain-text analysis is appended by the pipeline.
const MarkdownReportPrompt = `Convert the following text into a well-structured Markdown format. Include ALL of the following sections:
1. Analysis (including stage, observations, and confidence level)
2. Detailed medical explanation
3. Treatment recommendations or precautionary measures based on the stage
4. A medical disclaimer

Format it with proper Markdown headers, bullet points, and emphasis where appropriate.
Give the entire response in between ` + "```markdown```" + ` tags.

%s`

// EmailDraftPrompt asks the model for a structured draft from a free-form description.
const EmailDraftPrompt = `You are a professional email writing assistant. Write a complete email based on the following description.

Description: %s

Respond in EXACTLY this format:
Subject: <the subject line>
Body:
<the full email body>

Do not add anything before the Subject line or after the body.`

// EmailModifyPrompt asks the model to revise a previously generated draft.
const EmailModifyPrompt = `You are a professional email writing assistant. Revise the email below according to the user's suggestions. Keep everything the user did not ask to change.

Current email:
%s

Suggestions: %s

Respond in EXACTLY this format:
Subject: <the subject line>
Body:
<the full email body>

Do not add anything before the Subject line or after the body.`

// DataInsightsPrompt asks for structured insights over a tabular sample. The
// rendered sample and column information are interpolated by pkg/dataset.
const DataInsightsPrompt = `You are a data analysis expert. Analyze the following data sample and provide insights and suggested queries.

Data Sample:
%s

Column Information:
%s

Please provide:
1. A brief analysis of the data structure and potential insights
2. A list of 5-7 specific, actionable queries that would help understand the data better
3. Suggestions for what kind of visualizations might be useful

Format your response as follows:
ANALYSIS:
<your analysis>

SUGGESTED QUERIES:
- <query 1>
- <query 2>
...

VISUALIZATION SUGGESTIONS:
- <suggestion 1>
- <suggestion 2>
...`
