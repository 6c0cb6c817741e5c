package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"medirec-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GeneratePatientCode returns a client-side patient identifier in the form
// PAT<HHMMSS><3 random digits>. The backend keeps the code if it is free and
// reports a conflict otherwise.
func GeneratePatientCode() string {
	const codeDigits = "0123456789"
	max := big.NewInt(int64(len(codeDigits)))

	suffix := make([]byte, 3)
	for i := range suffix {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			suffix[i] = '0'
			continue
		}
		suffix[i] = codeDigits[num.Int64()]
	}

	return fmt.Sprintf("PAT%s%s", time.Now().Format("150405"), string(suffix))
}

func GenerateArchiveObjectName(patientCode string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("deleted/%s_%s.json", patientCode, timestamp)
}
