package models

import "time"

// Supported lab test types.
const (
	TestTypeBlood = "blood"
	TestTypeTasso = "tasso"
	TestTypePrick = "prick"
)

// ValidTestType reports whether t is one of the supported test types.
func ValidTestType(t string) bool {
	return t == TestTypeBlood || t == TestTypeTasso || t == TestTypePrick
}

// LabTest represents a paid lab test order. Created after payment capture;
// mutated once later to attach the uploaded result document.
type LabTest struct {
	ID            string    `bson:"id" json:"id"`
	PatientID     string    `bson:"patient_id" json:"patientId"`
	TestType      string    `bson:"test_type" json:"testType"`
	DocFile       string    `bson:"doc_file,omitempty" json:"docfile,omitempty"`
	DocFileKey    string    `bson:"doc_file_key,omitempty" json:"docfilekey,omitempty"`
	PaymentStatus string    `bson:"payment_status" json:"paymentStatus"`
	TestFee       float64   `bson:"test_fee" json:"testfee"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// LabTestWithPatient is a lab test joined with its owning patient.
type LabTestWithPatient struct {
	LabTest `bson:",inline"`
	Patient *User `bson:"patient,omitempty" json:"patient,omitempty"`
}

// LabTestResponse is returned after a successful test order.
type LabTestResponse struct {
	Test         *LabTest `json:"test"`
	ClientSecret string   `json:"clientSecret"`
}
