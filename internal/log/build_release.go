//go:build !debug

package log

// DebugBuild 报告当前二进制是否以 -tags debug 构建。
const DebugBuild = false
