// Package i18n holds the report messages for English, Traditional Chinese
// and Simplified Chinese.
//
// Languages are chosen with golang.org/x/text/language so that tags such as
// "en-US" or "zh-Hant-TW" resolve to the closest supported catalog. A key
// without a translation renders as the key itself.
package i18n
