package domain

import "time"

type DocumentType string

const (
	DocStatementFront DocumentType = "statement_front"
	DocStatementBack  DocumentType = "statement_back"
)

// ClaimRecord is the structured representation of one claim statement,
// extracted from OCR text by the remote model. Tri-state booleans use *bool:
// nil means the statement did not make the fact determinable.
type ClaimRecord struct {
	DocumentType  DocumentType            `json:"document_type"`
	ExtractedText string                  `json:"extracted_text"`
	Policyholder  PolicyholderInformation `json:"policyholder_information"`
	Vehicle       VehicleInformation      `json:"vehicle_information"`
	Accident      AccidentInformation     `json:"accident_information"`
	Incident      IncidentDescription     `json:"description_of_incident"`
	Damages       []DamageItem            `json:"description_of_damages"`
	Witness       WitnessInformation      `json:"witness_information"`
	PoliceReport  PoliceReport            `json:"police_report"`
	Signature     Signature               `json:"signature"`
	Confidence    string                  `json:"confidence"`
	Notes         string                  `json:"notes,omitempty"`
}

type PolicyholderInformation struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	PolicyNumber string `json:"policy_number"`
	ClaimantID   string `json:"claimant_id"`
}

type VehicleInformation struct {
	Year         string `json:"year"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	VIN          string `json:"vin"`
	LicensePlate string `json:"license_plate"`
}

type AccidentInformation struct {
	DateOfIncident string `json:"date_of_incident"`
	Time           string `json:"time"`
	Location       string `json:"location"`
	IsUSTerritory  *bool  `json:"is_us_territory"`
}

type IncidentDescription struct {
	Description       string `json:"description"`
	IsDateMatch       *bool  `json:"is_date_match"`
	IsLocationMatch   *bool  `json:"is_location_match"`
	HasWitness        bool   `json:"has_witness"`
	IsOwnFault        *bool  `json:"is_own_fault"`
	IsThirdPartyFault *bool  `json:"is_third_party_fault"`
	VehicleWasMoving  *bool  `json:"vehicle_was_moving"`
}

type DamageItem struct {
	PartName          string `json:"part_name"`
	DamageDescription string `json:"damage_description"`
	Severity          string `json:"severity"`
	RepairOrReplace   string `json:"repair_or_replace"`
}

type WitnessInformation struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsMatching *bool  `json:"is_matching"`
}

type PoliceReport struct {
	ReportNumber     string `json:"report_number"`
	PoliceDepartment string `json:"police_department"`
}

type Signature struct {
	IsPresent         bool   `json:"is_present"`
	PrintedName       string `json:"printed_name"`
	Date              string `json:"date"`
	IsDateWithinAWeek *bool  `json:"is_date_within_a_week"`
	IsNameMatching    *bool  `json:"is_name_matching"`
}

// Normalize makes slice fields safe for serialization and downstream readers.
func (r *ClaimRecord) Normalize() {
	if r.Damages == nil {
		r.Damages = []DamageItem{}
	}
}

type RecordMetadata struct {
	SourceFile          string    `json:"source_file"`
	ProcessingTimestamp time.Time `json:"processing_timestamp"`
	Model               string    `json:"agent_model,omitempty"`
	OriginalTextLength  int       `json:"original_text_length,omitempty"`
}

// StructuredResult is the persisted output of one structuring run: either a
// parsed ClaimRecord or an error status with the model's raw reply preserved.
type StructuredResult struct {
	Status      ResultStatus      `json:"status"`
	Error       string            `json:"error,omitempty"`
	RawResponse string            `json:"raw_response,omitempty"`
	Record      *ClaimRecord      `json:"record,omitempty"`
	Evaluation  *PolicyEvaluation `json:"policy_evaluation,omitempty"`
	Metadata    RecordMetadata    `json:"metadata"`
}

func NewStructuredError(sourceFile, message, rawResponse string) *StructuredResult {
	return &StructuredResult{
		Status:      ResultError,
		Error:       message,
		RawResponse: rawResponse,
		Metadata: RecordMetadata{
			SourceFile:          sourceFile,
			ProcessingTimestamp: time.Now().UTC(),
		},
	}
}
