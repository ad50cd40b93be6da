package patient

import "strings"

const cpfLength = 11

// CleanCPF removes every character that is not a decimal digit, so
// "111.444.777-35" and "11144477735" address the same record.
func CleanCPF(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF reports whether raw, once stripped of formatting characters,
// is an 11-digit CPF whose two check digits are correct.
func ValidCPF(raw string) bool {
	cpf := CleanCPF(raw)
	if len(cpf) != cpfLength {
		return false
	}

	var d [cpfLength]int
	allSame := true
	for i := 0; i < cpfLength; i++ {
		d[i] = int(cpf[i] - '0')
		if d[i] != d[0] {
			allSame = false
		}
	}
	// Sequences like 00000000000 pass the arithmetic but are never issued.
	if allSame {
		return false
	}

	if checkDigit(d[:9], 10) != d[9] {
		return false
	}
	return checkDigit(d[:10], 11) == d[10]
}

// checkDigit weights digits from startWeight down to 2 and reduces the sum
// modulo 11, folding remainders of 10 onto 0.
func checkDigit(digits []int, startWeight int) int {
	sum := 0
	for i, v := range digits {
		sum += v * (startWeight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	return rest
}

// FormatCPF renders an 11-digit identifier as 000.000.000-00. Anything else
// is returned unchanged.
func FormatCPF(digits string) string {
	if len(digits) != cpfLength || CleanCPF(digits) != digits {
		return digits
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}
