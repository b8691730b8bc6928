package openai

const metadataResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "title": {
      "type": "string"
    },
    "authors": {
      "type": "array",
      "items": {
        "type": "string"
      }
    },
    "abstract": {
      "type": "string"
    }
  },
  "required": ["title", "authors", "abstract"],
  "additionalProperties": false
}`

const metadataPromptTemplate = `Extract bibliographic metadata from the beginning of the academic paper given as input and return it as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "title" is the paper's title exactly as printed. If no title can be identified, use "".
- "authors" lists author names in the order they appear. Exclude affiliations and email addresses. If no authors can be identified, use [].
- "abstract" is the paper's abstract, verbatim where possible. If no abstract can be identified, use "".
- Do not invent information that is not present in the text.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Attention Is All You Need\nAshish Vaswani, Noam Shazeer\nAbstract\nThe dominant sequence transduction models..."
Output:
{
  "title": "Attention Is All You Need",
  "authors": ["Ashish Vaswani", "Noam Shazeer"],
  "abstract": "The dominant sequence transduction models..."
}`

const summaryPromptTemplate = `Summarize the academic paper text given as input.

Write a %s summary. Output only the summary text, with no preamble, headings, or commentary.

Guidance per level:
- "brief": 2-3 sentences capturing the core contribution and result.
- "detailed": one or two paragraphs covering motivation, method, and findings.`

// summarySimplifiedPrompt is the reduced prompt used on the single
// retry after a summarization failure.
const summarySimplifiedPrompt = `Summarize the following text in a few sentences. Output only the summary.`
