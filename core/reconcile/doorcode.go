package reconcile

import "fmt"

// doorCodeLength is the number of trailing phone digits used as the code.
const doorCodeLength = 4

// DeriveDoorCode computes a guest's door code: the last four characters of
// the default-flagged phone number, falling back to the first listed number
// when none is flagged. The stored numbers are plain digit strings, so no
// digit validation is applied.
func DeriveDoorCode(guest Guest) (string, error) {
	if len(guest.Phones) == 0 {
		return "", fmt.Errorf("guest %q: %w", guest.FullName(), ErrNoPhoneNumber)
	}

	number := guest.Phones[0].Number
	for _, p := range guest.Phones {
		if p.IsDefault {
			number = p.Number
			break
		}
	}

	if len(number) <= doorCodeLength {
		return number, nil
	}
	return number[len(number)-doorCodeLength:], nil
}
