// Package fiscal: generación determinista de la firma de recibo y el payload QR
// (simulación offline del registro eTIMS ante la autoridad tributaria).
// Algoritmo: SHA-256 sobre la cadena semilla en orden estricto.

package fiscal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// qrPrefix identifica el payload en el recibo impreso.
const qrPrefix = "KRA"

// ReceiptParams datos de la venta completada que entran en la firma.
type ReceiptParams struct {
	SaleNumber  string          // número de venta, sin espacios
	TotalAmount decimal.Decimal // total de la venta (IVA incluido)
	CreatedAt   time.Time       // fecha de emisión
	CashierID   string          // solo entra al QR, no a la firma
}

// Receipt artefacto fiscal generado: firma y payload QR textual.
// QRImage queda vacío cuando no hay renderizador de imagen disponible;
// la firma y el payload textual nunca fallan por eso.
type Receipt struct {
	Signature string
	QRPayload string
	QRImage   string
}

// QRImageEncoder renderiza la imagen del QR a partir del payload. Opcional.
type QRImageEncoder interface {
	Encode(payload string) (string, error)
}

// SignerService calcula la firma del recibo y su QR.
type SignerService struct {
	imageEncoder QRImageEncoder // nil = sin imagen
}

// NewSignerService crea el servicio sin renderizador de imagen.
func NewSignerService() *SignerService {
	return &SignerService{}
}

// NewSignerServiceWithEncoder crea el servicio con renderizador de imagen QR.
func NewSignerServiceWithEncoder(enc QRImageEncoder) *SignerService {
	return &SignerService{imageEncoder: enc}
}

// Sign genera la firma y el payload QR para los parámetros dados.
// Cadena semilla (separador "|"): SaleNumber + Fecha UTC (YYYY-MM-DD HH:MM:SS) + Total (2 decimales).
// Payload QR: KRA|SaleNumber|Fecha|Total|CashierID|Firma.
// Determinista: mismos parámetros producen siempre el mismo recibo.
func (s *SignerService) Sign(p *ReceiptParams) (*Receipt, error) {
	if p == nil {
		return nil, fmt.Errorf("fiscal: ReceiptParams es obligatorio")
	}
	saleNumber := strings.TrimSpace(p.SaleNumber)
	if saleNumber == "" || strings.ContainsAny(saleNumber, " \t") {
		return nil, fmt.Errorf("fiscal: SaleNumber es obligatorio y sin espacios")
	}
	if p.CreatedAt.IsZero() {
		return nil, fmt.Errorf("fiscal: CreatedAt es obligatorio")
	}

	fecha := p.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	monto := p.TotalAmount.Round(2).StringFixed(2)

	// Orden estricto de la semilla (separador "|")
	cadena := saleNumber + "|" + fecha + "|" + monto
	hash := sha256.Sum256([]byte(cadena))
	signature := hex.EncodeToString(hash[:])

	receipt := &Receipt{
		Signature: signature,
		QRPayload: strings.Join([]string{qrPrefix, saleNumber, fecha, monto, p.CashierID, signature}, "|"),
	}
	if s.imageEncoder != nil {
		// La imagen es cosmética: si el renderizador falla, el recibo sigue siendo válido.
		if img, err := s.imageEncoder.Encode(receipt.QRPayload); err == nil {
			receipt.QRImage = img
		}
	}
	return receipt, nil
}
