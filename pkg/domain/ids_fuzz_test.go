package domain

import "testing"

// FuzzParseLeaseID checks that parsing never panics on arbitrary input and
// that the unset sentinel is the only possible outcome of a parse failure.
func FuzzParseLeaseID(f *testing.F) {
	f.Add("")
	f.Add("1")
	f.Add("-1")
	f.Add("9223372036854775807")
	f.Add("9223372036854775808")
	f.Add("'; DROP TABLE leases;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id := ParseLeaseID(input)
		if id.Valid() && id <= 0 {
			t.Fatalf("valid lease ID %d is not positive", id)
		}
	})
}
