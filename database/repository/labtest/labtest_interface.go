package labtestRepo

import "medibook/models"

// LabTestRepository defines persistence for lab test orders.
type LabTestRepository interface {
	Create(test *models.LabTest) error
	GetByID(id string) (*models.LabTest, error)
	GetByIDWithPatient(id string) (*models.LabTestWithPatient, error)

	ListByPatient(patientID, testType string, page, limit int) ([]models.LabTest, int64, error)
	ListAllWithPatients(testType string, page, limit int) ([]models.LabTestWithPatient, int64, error)

	// AttachDocument records the uploaded result document on an existing test.
	AttachDocument(id, docFile, docFileKey string) (*models.LabTest, error)

	// CountByType returns the total test count and a per-type breakdown.
	CountByType() (int64, map[string]int64, error)
}
