package domain

import "errors"

var (
	// ErrInvalidPoolAddress ...
	ErrInvalidPoolAddress = errors.New("pool address must be a base58 32-byte key")
	// ErrInvalidBaseMint ...
	ErrInvalidBaseMint = errors.New("base mint must be a base58 32-byte key")
	// ErrInvalidQuoteMint ...
	ErrInvalidQuoteMint = errors.New("quote mint must be a base58 32-byte key")
	// ErrPoolSameMints ...
	ErrPoolSameMints = errors.New("base and quote mints must differ")
	// ErrInvalidSwapType ...
	ErrInvalidSwapType = errors.New("swap type must be normal or stable")
	// ErrInvalidSlope ...
	ErrInvalidSlope = errors.New("slope must be in (0, 1e18]")
	// ErrInvalidTradeFee ...
	ErrInvalidTradeFee = errors.New("trade fee must be a fraction in [0, 1]")
	// ErrInvalidWithdrawFee ...
	ErrInvalidWithdrawFee = errors.New("withdraw fee must be a fraction in [0, 1]")
	// ErrInvalidReserveLimit ...
	ErrInvalidReserveLimit = errors.New("min reserve limit must be below 100%")
	// ErrPoolNotFound ...
	ErrPoolNotFound = errors.New("pool not found")
	// ErrPoolAlreadyExists ...
	ErrPoolAlreadyExists = errors.New("pool already exists")
)
