// FILE: internal/service/receipt_service.go
package service

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"marketplace-billing-be/internal/entity"
)

type IReceiptService interface {
	// RenderReceipt writes the HTML receipt for a validated claim and
	// returns the file path.
	RenderReceipt(claim *entity.PaymentClaim, invoice *entity.Invoice) (string, error)
}

type receiptService struct {
	dir  string
	tmpl *template.Template
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Receipt {{.ReceiptNumber}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>Payment Receipt</h1>
	<p><strong>Receipt:</strong> {{.ReceiptNumber}}</p>
	<p><strong>Invoice:</strong> {{.InvoiceNumber}}</p>
	<p><strong>Amount:</strong> {{.Amount}} FCFA</p>
	<p><strong>Method:</strong> {{.Method}}</p>
	{{if .Reference}}<p><strong>Reference:</strong> {{.Reference}}</p>{{end}}
	<p><strong>Payment date:</strong> {{.PaymentDate}}</p>
	<p><strong>Validated on:</strong> {{.ValidationDate}}</p>
</body>
</html>
`))

func NewReceiptService(dir string) IReceiptService {
	return &receiptService{
		dir:  dir,
		tmpl: receiptTemplate,
	}
}

func (s *receiptService) RenderReceipt(claim *entity.PaymentClaim, invoice *entity.Invoice) (string, error) {
	if claim.Status != entity.ClaimStatusValidated {
		return "", fmt.Errorf("receipt requires a validated claim, got %s", claim.Status)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	validationDate := ""
	if claim.ValidationDate != nil {
		validationDate = claim.ValidationDate.Format("2006-01-02 15:04")
	}
	data := map[string]interface{}{
		"ReceiptNumber":  claim.ReceiptNumber,
		"InvoiceNumber":  invoice.InvoiceNumber,
		"Amount":         claim.Amount,
		"Method":         string(claim.Method),
		"Reference":      claim.TransactionReference,
		"PaymentDate":    claim.PaymentDate.Format("2006-01-02"),
		"ValidationDate": validationDate,
	}

	path := filepath.Join(s.dir, claim.ReceiptNumber+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := s.tmpl.Execute(f, data); err != nil {
		return "", err
	}
	return path, nil
}
