package gs1

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestCheckDigit(t *testing.T) {
	type test struct {
		name, payload string
		want          int
		bad           bool
	}

	pass := func(payload string, want int) test {
		return test{name: payload, payload: payload, want: want}
	}
	fail := func(name, payload string) test {
		return test{name: name, payload: payload, bad: true}
	}

	for i, tt := range []test{
		pass("03600029145", 2),
		pass("061414100734", 9), // GTIN-13 payload of 0614141007349
		pass("0", 0),
		pass("1", 7), // rightmost digit carries weight 3
		pass("00000000000", 0),
		pass("7", 9),

		fail("empty", ""),
		fail("non-digits", "03600o29145"),
		fail("signed", "-3600029145"),
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)

			cd, err := CheckDigit(tt.payload)
			if tt.bad {
				w.As(tt.payload).ShouldFail(err)
				return
			}
			w.As(tt.payload).ShouldSucceed(err)
			w.ShouldBeEqual(cd, tt.want)
		})
	}
}

func TestCheckDigit_0to9(t *testing.T) {
	// the check digit is always 0-9, regardless of payload
	w := expect.WrapT(t)
	for i := 0; i < 1000; i++ {
		payload := strconv.Itoa(rand.Int())
		cd := w.StopOnMismatch().ShouldHaveResult(CheckDigit(payload)).(int)
		if cd < 0 || cd > 9 {
			t.Errorf("bad check digit for %s: %d", payload, cd)
		}
	}
}

func TestAppendCheckDigit(t *testing.T) {
	w := expect.WrapT(t)

	w.ShouldBeEqual(
		w.ShouldHaveResult(AppendCheckDigit("03600029145")).(string),
		"036000291452")
	w.ShouldBeEqual(
		w.ShouldHaveResult(AppendCheckDigit("061414100734")).(string),
		"0614141007349")

	_, err := AppendCheckDigit("")
	w.ShouldFail(err)
}

func TestValidateCheckDigit(t *testing.T) {
	w := expect.WrapT(t)

	w.ShouldBeTrue(w.ShouldHaveResult(ValidateCheckDigit("036000291452")).(bool))
	w.ShouldBeFalse(w.ShouldHaveResult(ValidateCheckDigit("036000291453")).(bool))
	w.ShouldBeTrue(w.ShouldHaveResult(ValidateCheckDigit("00")).(bool))

	// codes too short or malformed to check fail outright
	_, err := ValidateCheckDigit("2")
	w.ShouldFail(err)
	_, err = ValidateCheckDigit("")
	w.ShouldFail(err)
	_, err = ValidateCheckDigit("03600029145x")
	w.ShouldFail(err)

	// appending a computed check digit always validates
	for i := 0; i < 1000; i++ {
		payload := strconv.Itoa(rand.Int())
		code := w.StopOnMismatch().ShouldHaveResult(AppendCheckDigit(payload)).(string)
		w.As(code).ShouldBeTrue(
			w.ShouldHaveResult(ValidateCheckDigit(code)).(bool))
	}
}
