package seed

import (
	"fmt"
	"math"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/iancoleman/orderedmap"

	"github.com/securevault/vault-system/internal/core/ports"
)

// Fake generates n synthetic records. The same seed yields the same records.
func Fake(n int, seed uint64) []ports.ImportInput {
	f := gofakeit.New(seed)
	out := make([]ports.ImportInput, 0, n)
	for i := 0; i < n; i++ {
		accountID := fmt.Sprintf("ACC-%06d", 100000+i)
		name := f.Name()

		data := orderedmap.New()
		data.Set("account_id", accountID)
		data.Set("customer_name", name)
		data.Set("email", f.Email())
		data.Set("phone", f.Phone())
		data.Set("employer", f.Company())
		data.Set("balance", math.Round(f.Float64Range(0, 250000)*100)/100)
		data.Set("credit_limit", f.Number(1, 50)*1000)

		out = append(out, ports.ImportInput{
			AccountID:    accountID,
			CustomerName: name,
			Data:         data,
		})
	}
	return out
}
