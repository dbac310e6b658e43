package usecase

import "github.com/shopspring/decimal"

// SplitTotal は注文合計（マイナー単位）を手数料とキュレーター取り分に分ける。
// 手数料 = total × rate を最小通貨単位へ四捨五入（round-half-up）、
// 取り分 = total − 手数料。両者の和は常にtotalに一致する（端数を作らない）。
func SplitTotal(totalAmount int64, rate decimal.Decimal) (commission int64, curatorAmount int64) {
	commission = decimal.NewFromInt(totalAmount).Mul(rate).Round(0).IntPart()
	curatorAmount = totalAmount - commission
	return commission, curatorAmount
}
