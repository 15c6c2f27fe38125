package foundry

import (
	"fmt"
	"strings"

	"github.com/claimsight/claimsight/internal/core/domain"
)

const extractionPrompt = `Extract all text from this insurance claim statement image.

Return every piece of text you can read, preserving the document layout as
closely as possible. Include:
- Claim and policy numbers
- Policy holder information
- Vehicle information
- Accident details
- Damage descriptions
- Witness and police report details
- Signatures and dates
- Checkbox states and any other relevant information

Return the raw text only, no commentary.`

const structuringInstructions = `You are an expert at extracting structured data from insurance claim statement text.

**Your Task**:
Parse the provided text and extract information into the structured JSON format below.

**JSON Output Structure**:
{
  "document_type": "statement_front | statement_back",
  "extracted_text": "Complete raw text from the document",
  "policyholder_information": {
    "name": "Policy holder name",
    "address": "Full address",
    "phone": "Phone number",
    "email": "Email address",
    "policy_number": "Policy number",
    "claimant_id": "Claimant ID if present"
  },
  "vehicle_information": {
    "year": "Vehicle year",
    "make": "Vehicle make/manufacturer",
    "model": "Vehicle model",
    "color": "Vehicle color",
    "vin": "VIN number",
    "license_plate": "License plate number"
  },
  "accident_information": {
    "date_of_incident": "Date in YYYY-MM-DD format if possible",
    "time": "Time of incident",
    "location": "Location/address of incident",
    "is_us_territory": true | false | null
  },
  "description_of_incident": {
    "description": "Full incident description text",
    "is_date_match": true | false | null,
    "is_location_match": true | false | null,
    "has_witness": true | false,
    "is_own_fault": true | false | null,
    "is_third_party_fault": true | false | null,
    "vehicle_was_moving": true | false | null
  },
  "description_of_damages": [
    {
      "part_name": "Name of damaged part",
      "damage_description": "Description of damage",
      "severity": "minor | moderate | severe",
      "repair_or_replace": "repair | replace | unsure"
    }
  ],
  "witness_information": {
    "name": "Witness name",
    "phone": "Witness phone",
    "is_matching": true | false | null
  },
  "police_report": {
    "report_number": "Police report number",
    "police_department": "Police department name"
  },
  "signature": {
    "is_present": true | false,
    "printed_name": "Printed name on signature",
    "date": "Signature date",
    "is_date_within_a_week": true | false | null,
    "is_name_matching": true | false | null
  },
  "confidence": "high | medium | low",
  "notes": "Any additional notes or observations"
}

**Processing Rules**:
1. Extract all available information from the text
2. Use null for fields where information is not present or unclear
3. For boolean fields, use true/false if determinable, null if unclear
4. Preserve original text formatting in the "extracted_text" field
5. Be as accurate as possible with data extraction
6. Set confidence based on text clarity and completeness
7. Return ONLY valid JSON, no additional commentary

**Important**:
- Your entire response must be valid JSON that can be parsed
- Do not include any text before or after the JSON object`

const policyEvaluationInstructions = `You are an experienced insurance claims adjuster.

You will be given a structured JSON object called claim_data representing an
auto insurance claim, already extracted from a handwritten or scanned
statement, followed by excerpts from the insurance policy documents most
relevant to the claim.

Your task:
- Carefully read claim_data.
- Identify the single best matching policy for this claim (if any).
- Using both the claim details and the policy text, estimate whether the loss
  is covered, who is likely liable, and whether the claim appears valid.

You MUST output a single JSON object with the following structure, representing
ONLY the value of a new top-level field policy_evaluation that will be added
onto claim_data by the calling application:

{
  "matched_policy": {
    "id": "Policy identifier or null if unknown",
    "title": "Short human-readable policy name or null",
    "score": 0.0,
    "summary": "Short summary of the relevant policy coverage in your own words",
    "raw_document_reference": "Optional short identifier for the matched document or null"
  },
  "coverage_assessment": {
    "coverage_applicability": "covered | partially_covered | not_covered | unclear",
    "estimated_company_liability_amount": 0,
    "deductible_applicable": true,
    "deductible_amount": 0,
    "limits_may_be_exceeded": false,
    "relevant_policy_sections": "Short description of which parts of the policy matter here"
  },
  "liability_assessment": {
    "at_fault_party": "policyholder | third_party | shared | unclear",
    "estimated_fault_split": {
      "policyholder_percent": 0,
      "third_party_percent": 0
    },
    "key_factors": "Brief explanation of why you assigned fault this way"
  },
  "claim_validity": {
    "is_claim_valid": true,
    "primary_reasons": "Short explanation of why the claim is or is not valid",
    "confidence": "high | medium | low"
  },
  "notes": "Any additional expert notes that could help a human adjuster review this case"
}

Important rules:
- Use numeric values for amounts and percentages when possible. Use 0 if unknown.
- Use null where information is genuinely not available.
- Be conservative: if policy coverage is ambiguous, prefer unclear with explanation.
- Do NOT repeat the entire claim JSON. Do NOT include any keys other than those
  shown above at the top level of your response.
- Your entire response must be valid JSON and must represent exactly the
  policy_evaluation object (no surrounding quotes or extra text).`

func buildStructuringQuery(text string, hint domain.DocumentType) string {
	var sb strings.Builder
	sb.WriteString("Please extract and structure the following text into the standardized JSON format.\n")
	if hint != "" {
		fmt.Fprintf(&sb, "\nThe document appears to be a %s.\n", hint)
	}
	sb.WriteString("\n---TEXT START---\n")
	sb.WriteString(text)
	sb.WriteString("\n---TEXT END---\n")
	sb.WriteString("\nReturn only the structured JSON object.")
	return sb.String()
}

func buildPolicyQuery(claimJSON string, policies []domain.PolicyDocument) string {
	var sb strings.Builder
	sb.WriteString("claim_data:\n")
	sb.WriteString(claimJSON)
	sb.WriteString("\n\nRelevant policy documents:\n")
	if len(policies) == 0 {
		sb.WriteString("(no matching policy documents were found)\n")
	}
	for _, p := range policies {
		fmt.Fprintf(&sb, "\n--- Policy %s: %s ---\n", p.ID, p.Title)
		sb.WriteString(p.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("\nReturn only the policy_evaluation JSON object.")
	return sb.String()
}
