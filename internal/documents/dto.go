package documents

type uploadRequestDTO struct {
	DocumentTypeID   string `json:"documentTypeId"`
	FileDataBase64   string `json:"fileDataBase64"`
	FileType         string `json:"fileType"`
	Side             string `json:"side"`
	IsAdditionalFile bool   `json:"isAdditionalFile"`
	FileName         string `json:"fileName"`
}

type uploadResponseDTO struct {
	Success        bool   `json:"success"`
	StorageKey     string `json:"storageKey"`
	DocumentTypeID string `json:"documentTypeId"`
	Side           string `json:"side"`
}

type replacementRequestDTO struct {
	DocumentTypeID string `json:"documentTypeId"`
}

type replacementResponseDTO struct {
	Success        bool   `json:"success"`
	DocumentTypeID string `json:"documentTypeId"`
	Status         string `json:"status"`
	EstimatedTime  string `json:"estimatedTime"`
}

type signURLResponseDTO struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}
