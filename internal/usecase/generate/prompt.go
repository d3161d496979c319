package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/bkyoung/interview-pack/internal/domain"
)

// SystemInstruction is the fixed system prompt. It pins the house style and
// the hard legal-compliance rules the model must follow for every pack.
const SystemInstruction = `You are an expert Talent Acquisition partner. Write in the house style: clear section headers in **bold**, concise bullet points (•), UK English, and a professional but human tone.
LEGAL COMPLIANCE: Only generate questions that are compliant in both the US and Europe. Do NOT ask about protected characteristics (e.g., age, race, colour, national origin/citizenship, religion, sex/gender, sexual orientation, gender identity, pregnancy/family/marital status, disability/health/genetic information), union affiliation, or other locally protected classes. Avoid salary history questions in jurisdictions that restrict them. If right-to-work is relevant, phrase neutrally (e.g., “Are you legally authorised to work in <region>?”) without probing immigration status.
Keep questions specific, practical, and evidence-based. Provide brief follow-ups and inline (Good:) and (Red flag:) cues where helpful. Tailor everything strictly to the JD.`

// legalFooter is appended to the user instruction whole, or not at all.
const legalFooter = `

**Compliance Advisory (for interviewer reference)**
• Avoid questions touching protected characteristics or salary history (where restricted).
• If a function requires background checks or driving, state this neutrally and per local law.
• Focus on essential functions, measurable outcomes, and reasonable accommodations where relevant.
`

// userTemplate renders the user instruction. The section list, order, and
// per-section guidance are fixed; only the JD, context values, and question
// counts are substituted.
const userTemplate = `JOB DESCRIPTION (verbatim):
---
{{.JD}}
---

Context:
- Seniority: {{.Seniority}}
- Region/Market context: {{.Region}}
- Aim: Produce a practical, low-jargon interview pack aligned to a structured first-interview template. Keep questions specific to the role, tech stack, stakeholders, and outcomes in the JD.
- Quantity: ~{{.PerSection}} questions per major section (use judgement based on JD importance).

Deliverables in this exact structure (use **bold** for headers and bullets for lists). Keep bullets punchy. Include brief follow-ups where useful. Prefer concrete, job-relevant prompts over generic ones.

**Introduction (Script, 1–2 mins)**
• One-paragraph welcome and format overview.

**Background & Experience (5–8 mins)**
• 2–3 tailored prompts that surface the MOST relevant prior work for this role (avoid CV walk-throughs). – Include 1 follow-up under each bullet.

**Motivation (2–3 mins)**
• 2–3 prompts testing understanding of the company and role fit in this region/market.

**Skills & Qualifications (6–8 mins)**
• {{.PerSection}} prompts tied directly to the JD must-haves (tools, methods, regulations, stakeholders). – Add 1 follow-up per bullet.

**Company Knowledge (2–3 mins)**
• 2 targeted prompts on how the candidate would contribute to the company’s mission in this function.

**Role-Specific Questions (Core, 10–12 mins)**
• {{.PerSection}} deep-dive prompts grounded in the JD’s outcomes. Ask for artefacts/metrics/decision criteria.

**Behavioural (Values & Ways of Working, 6–8 mins)**
• {{.PerSection}} STAR-oriented prompts mapped to collaboration, customer focus, integrity, growth mindset. – Add a realistic follow-up per bullet.

**Scenario-Based / Problem-Solving (6–8 mins)**
• {{.PerSection}} realistic scenarios using JD context (include data/constraints). – Add quick grading cues as (Good:) and (Red flag:).

**Candidate Questions (2–4 mins)**
• 3 suggested questions a strong candidate might ask (for interviewer awareness).

**Conclusion & Next Steps (Script, 1–2 mins)**
• A short close-out script and immediate next steps.

**Evaluation Rubric (Concise)**
• Define 3–5 criteria with descriptors for 1 (Below), 3 (Meets), 5 (Exceeds).

**Scorecard Template & Notes Page**
• Role | Interviewer | Date.
• Sections & Scores (1–5): Background | Motivation | Skills | Company | Role-Specific | Behavioural | Scenario.
• Overall recommendation (Yes/No + 2–3 bullets rationale).
• Notes: 12 numbered lines for handwritten/typed notes.
{{.LegalFooter}}
Formatting notes:
- Use bold section headers exactly as shown.
- Use standard bullets (•). Use short, scannable lines in British English.
- No markdown code fences.`

// SectionHeaders lists the twelve pack sections in their fixed order.
var SectionHeaders = []string{
	"Introduction",
	"Background & Experience",
	"Motivation",
	"Skills & Qualifications",
	"Company Knowledge",
	"Role-Specific",
	"Behavioural",
	"Scenario-Based",
	"Candidate Questions",
	"Conclusion",
	"Evaluation Rubric",
	"Scorecard Template",
}

var userTmpl = template.Must(template.New("user").Parse(userTemplate))

// BuildPrompt is a pure function from the extracted JD text and the chosen
// parameters to the (system, user) instruction pair sent to the model.
func BuildPrompt(jdText string, params domain.GenerationParameters) (system, user string, err error) {
	footer := ""
	if params.IncludeLegalFooter {
		footer = legalFooter
	}

	var buf bytes.Buffer
	data := struct {
		JD          string
		Seniority   string
		Region      string
		PerSection  int
		LegalFooter string
	}{
		JD:          strings.TrimSpace(jdText),
		Seniority:   params.Seniority,
		Region:      params.Region,
		PerSection:  params.PerSection,
		LegalFooter: footer,
	}
	if err := userTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render user instruction: %w", err)
	}

	return SystemInstruction, strings.TrimSpace(buf.String()), nil
}
