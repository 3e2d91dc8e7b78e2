package migration

import (
	"github.com/MKhiriev/go-otp-migrate/models"
)

// ParamsToOTP validates one raw credential and converts it into a canonical
// time-based credential.
//
// Unspecified or unrecognized algorithm values return *UnknownAlgorithmError,
// MD5 returns ErrUnsupportedAlgorithm. Unspecified or unrecognized digit
// counts return *UnknownDigitsError. Issuer, name and secret are copied
// verbatim; an empty name becomes a nil Account. The period is always
// models.DefaultPeriod and the Type field is not read.
func ParamsToOTP(params models.OtpParameters) (models.OTP, error) {
	var algorithm models.HashAlgorithm
	switch params.Algorithm {
	case models.AlgorithmSHA1:
		algorithm = models.SHA1
	case models.AlgorithmSHA256:
		algorithm = models.SHA256
	case models.AlgorithmSHA512:
		algorithm = models.SHA512
	case models.AlgorithmMD5:
		return models.OTP{}, ErrUnsupportedAlgorithm
	default:
		return models.OTP{}, &UnknownAlgorithmError{Value: int32(params.Algorithm)}
	}

	var digits int
	switch params.Digits {
	case models.DigitCountSix:
		digits = 6
	case models.DigitCountEight:
		digits = 8
	default:
		return models.OTP{}, &UnknownDigitsError{Value: int32(params.Digits)}
	}

	var account *string
	if params.Name != "" {
		name := params.Name
		account = &name
	}

	return models.OTP{
		Issuer:    params.Issuer,
		Account:   account,
		Secret:    append([]byte(nil), params.Secret...),
		Algorithm: algorithm,
		Digits:    digits,
		Period:    models.DefaultPeriod,
	}, nil
}

// OTPToParams converts a canonical credential back into a raw migration
// entry. The period is dropped since the format has no field for it.
// Credentials are expected to be valid; unknown algorithms and digit counts
// map to the unspecified enumeration values.
func OTPToParams(otp models.OTP) models.OtpParameters {
	params := models.OtpParameters{
		Secret: append([]byte(nil), otp.Secret...),
		Name:   otp.AccountName(),
		Issuer: otp.Issuer,
		Type:   models.OtpTypeTOTP,
	}

	switch otp.Algorithm {
	case models.SHA1:
		params.Algorithm = models.AlgorithmSHA1
	case models.SHA256:
		params.Algorithm = models.AlgorithmSHA256
	case models.SHA512:
		params.Algorithm = models.AlgorithmSHA512
	}

	switch otp.Digits {
	case 6:
		params.Digits = models.DigitCountSix
	case 8:
		params.Digits = models.DigitCountEight
	}

	return params
}
