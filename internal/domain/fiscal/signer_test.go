package fiscal_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukapos/dukapos-api/internal/domain/fiscal"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestSign_VectorExacto valida que la firma SHA-256 produce el hash exacto
// esperado para parámetros conocidos.
//
// Si alguien modifica inadvertidamente la cadena semilla, el algoritmo o el
// formato de los montos, este test falla de inmediato: los recibos ya emitidos
// dejarían de verificar contra su firma.
//
// Vector calculado manualmente con SHA-256:
//
//	Cadena = SaleNumber + "|" + Fecha UTC + "|" + Total
//	       = "SALE-9F3C2A71B0DE" + "|" + "2024-03-15 10:30:00" + "|" + "1450.00"
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSignatureExpected = "47ae4226d1cc58abf89b6b422c35548eb1c14ad69d07055c0a0f334aec7d083c"

	testSaleNumber = "SALE-9F3C2A71B0DE"
	testCashierID  = "cashier-01"
)

var testCreatedAt = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func buildTestParams() *fiscal.ReceiptParams {
	return &fiscal.ReceiptParams{
		SaleNumber:  testSaleNumber,
		TotalAmount: decimal.NewFromFloat(1450),
		CreatedAt:   testCreatedAt,
		CashierID:   testCashierID,
	}
}

func TestSign_VectorExacto(t *testing.T) {
	svc := fiscal.NewSignerService()

	receipt, err := svc.Sign(buildTestParams())
	require.NoError(t, err, "Sign no debe retornar error con parámetros válidos")
	assert.Equal(t, testSignatureExpected, receipt.Signature,
		"La firma debe coincidir exactamente con el vector SHA-256 de referencia")
}

func TestSign_PayloadQR(t *testing.T) {
	svc := fiscal.NewSignerService()

	receipt, err := svc.Sign(buildTestParams())
	require.NoError(t, err)
	assert.Equal(t,
		"KRA|SALE-9F3C2A71B0DE|2024-03-15 10:30:00|1450.00|cashier-01|"+testSignatureExpected,
		receipt.QRPayload,
		"El payload QR debe codificar la tupla completa más cajero y firma")
	assert.Empty(t, receipt.QRImage,
		"Sin renderizador, la imagen QR queda vacía sin fallar la firma")
}

// TestSign_Determinista verifica que firmar dos veces con los mismos parámetros
// produce siempre el mismo recibo.
func TestSign_Determinista(t *testing.T) {
	svc := fiscal.NewSignerService()

	r1, err1 := svc.Sign(buildTestParams())
	r2, err2 := svc.Sign(buildTestParams())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r1.Signature, r2.Signature, "El mismo input siempre debe producir la misma firma")
	assert.Equal(t, r1.QRPayload, r2.QRPayload)
}

// TestSign_SensibleAlInput verifica que cambiar cualquier campo de la semilla
// produce una firma distinta.
func TestSign_SensibleAlInput(t *testing.T) {
	svc := fiscal.NewSignerService()

	base, _ := svc.Sign(buildTestParams())

	otroNumero := buildTestParams()
	otroNumero.SaleNumber = "SALE-9F3C2A71B0DF"
	r1, _ := svc.Sign(otroNumero)
	assert.NotEqual(t, base.Signature, r1.Signature, "Ventas distintas deben tener firmas distintas")

	otroMonto := buildTestParams()
	otroMonto.TotalAmount = decimal.NewFromFloat(1450.01)
	r2, _ := svc.Sign(otroMonto)
	assert.NotEqual(t, base.Signature, r2.Signature, "El monto entra en la semilla")

	otraFecha := buildTestParams()
	otraFecha.CreatedAt = testCreatedAt.Add(time.Second)
	r3, _ := svc.Sign(otraFecha)
	assert.NotEqual(t, base.Signature, r3.Signature, "La fecha entra en la semilla")
}

// TestSign_CajeroNoEntraEnFirma verifica que el cajero solo afecta el QR,
// nunca la firma (la firma cubre la tupla venta/fecha/monto).
func TestSign_CajeroNoEntraEnFirma(t *testing.T) {
	svc := fiscal.NewSignerService()

	p1 := buildTestParams()
	p2 := buildTestParams()
	p2.CashierID = "cashier-02"

	r1, _ := svc.Sign(p1)
	r2, _ := svc.Sign(p2)

	assert.Equal(t, r1.Signature, r2.Signature)
	assert.NotEqual(t, r1.QRPayload, r2.QRPayload)
}

// TestSign_LongitudFirma valida que la firma SHA-256 tenga exactamente
// 64 caracteres hexadecimales (256 bits / 4 bits por nibble).
func TestSign_LongitudFirma(t *testing.T) {
	svc := fiscal.NewSignerService()
	receipt, err := svc.Sign(buildTestParams())
	require.NoError(t, err)
	assert.Len(t, receipt.Signature, 64, "La firma debe tener 64 caracteres hexadecimales (SHA-256)")
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestSign_ErrorSiNilParams(t *testing.T) {
	svc := fiscal.NewSignerService()
	_, err := svc.Sign(nil)
	assert.Error(t, err, "Sign con nil debe retornar error")
}

func TestSign_ErrorSiSaleNumberVacio(t *testing.T) {
	svc := fiscal.NewSignerService()
	p := buildTestParams()
	p.SaleNumber = "  "
	_, err := svc.Sign(p)
	assert.Error(t, err, "Sign sin SaleNumber debe retornar error")
}

func TestSign_ErrorSiFechaCero(t *testing.T) {
	svc := fiscal.NewSignerService()
	p := buildTestParams()
	p.CreatedAt = time.Time{}
	_, err := svc.Sign(p)
	assert.Error(t, err, "Sign sin fecha debe retornar error")
}

// ── Degradación del renderizador de imagen ────────────────────────────────────

type failingEncoder struct{}

func (failingEncoder) Encode(string) (string, error) { return "", errors.New("sin soporte de imagen") }

type fakeEncoder struct{}

func (fakeEncoder) Encode(payload string) (string, error) { return "img:" + payload, nil }

func TestSign_EncoderFallidoDegradaSinError(t *testing.T) {
	svc := fiscal.NewSignerServiceWithEncoder(failingEncoder{})
	receipt, err := svc.Sign(buildTestParams())
	require.NoError(t, err, "Un fallo del renderizador de imagen nunca falla la firma")
	assert.Empty(t, receipt.QRImage)
	assert.Equal(t, testSignatureExpected, receipt.Signature)
}

func TestSign_EncoderDisponibleRellenaImagen(t *testing.T) {
	svc := fiscal.NewSignerServiceWithEncoder(fakeEncoder{})
	receipt, err := svc.Sign(buildTestParams())
	require.NoError(t, err)
	assert.Equal(t, "img:"+receipt.QRPayload, receipt.QRImage)
}
