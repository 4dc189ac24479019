// Package mwrr computes the money-weighted rate of return (MWRR) of investment
// contracts from their brokerage statements.
//
// A statement provides two tables:
//   - balances: the value of each position of a contract on valuation days,
//   - movements: the ledger of operations of the contract.
//
// The pipeline is:
//   - Aggregate sums the positions of a day into a portfolio value series per contract,
//   - Classifier keeps the movements that are external cash flows (deposits, withdrawals, ...),
//   - Assemble turns a contract's first and last values and its movements into a
//     chronological series of signed cash flows,
//   - Solver finds the annual rate that zeroes the net present value of that series (XIRR).
//
// Analyzer runs the pipeline on every contract and collects a ContractResult for
// each of them, a failure on one contract never affecting the others.
package mwrr
