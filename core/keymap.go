package core

import zxcore "github.com/user-none/efuse/api"

// RetroKey is a host keyboard key code as polled through the keyboard
// device.
type RetroKey uint

const (
	RetroKeyBackspace  RetroKey = 8
	RetroKeyTab        RetroKey = 9
	RetroKeyReturn     RetroKey = 13
	RetroKeyEscape     RetroKey = 27
	RetroKeySpace      RetroKey = 32
	RetroKeyExclaim    RetroKey = 33
	RetroKeyHash       RetroKey = 35
	RetroKeyDollar     RetroKey = 36
	RetroKeyAmpersand  RetroKey = 38
	RetroKeyQuote      RetroKey = 39
	RetroKeyLeftParen  RetroKey = 40
	RetroKeyRightParen RetroKey = 41
	RetroKeyAsterisk   RetroKey = 42
	RetroKeyPlus       RetroKey = 43
	RetroKeyComma      RetroKey = 44
	RetroKeyMinus      RetroKey = 45
	RetroKeyPeriod     RetroKey = 46
	RetroKeySlash      RetroKey = 47
	RetroKey0          RetroKey = 48
	RetroKey9          RetroKey = 57
	RetroKeyColon      RetroKey = 58
	RetroKeySemicolon  RetroKey = 59
	RetroKeyLess       RetroKey = 60
	RetroKeyEquals     RetroKey = 61
	RetroKeyGreater    RetroKey = 62
	RetroKeyCaret      RetroKey = 94
	RetroKeyA          RetroKey = 97
	RetroKeyZ          RetroKey = 122
	RetroKeyDelete     RetroKey = 127
	RetroKeyKPEnter    RetroKey = 271
	RetroKeyUp         RetroKey = 273
	RetroKeyDown       RetroKey = 274
	RetroKeyRight      RetroKey = 275
	RetroKeyLeft       RetroKey = 276
	RetroKeyInsert     RetroKey = 277
	RetroKeyHome       RetroKey = 278
	RetroKeyEnd        RetroKey = 279
	RetroKeyPageUp     RetroKey = 280
	RetroKeyPageDown   RetroKey = 281
	RetroKeyF1         RetroKey = 282
	RetroKeyF12        RetroKey = 293
	RetroKeyRShift     RetroKey = 303
	RetroKeyLShift     RetroKey = 304
	RetroKeyRCtrl      RetroKey = 305
	RetroKeyLCtrl      RetroKey = 306
	RetroKeyRAlt       RetroKey = 307
	RetroKeyLAlt       RetroKey = 308
	RetroKeyRMeta      RetroKey = 309
	RetroKeyLMeta      RetroKey = 310
	RetroKeyLSuper     RetroKey = 311
	RetroKeyRSuper     RetroKey = 312
	RetroKeyMenu       RetroKey = 319
)

type keyMapping struct {
	host   RetroKey
	engine zxcore.Key
}

// keymap is the raw keyboard translation table, in polling order.
var keymap = buildKeymap()

func buildKeymap() []keyMapping {
	m := []keyMapping{
		{RetroKeyTab, zxcore.KeyTab},
		{RetroKeyReturn, zxcore.KeyReturn},
		{RetroKeyEscape, zxcore.KeyEscape},
		{RetroKeySpace, zxcore.KeySpace},
		{RetroKeyExclaim, zxcore.KeyExclam},
		{RetroKeyHash, zxcore.KeyNumberSign},
		{RetroKeyDollar, zxcore.KeyDollar},
		{RetroKeyAmpersand, zxcore.KeyAmpersand},
		{RetroKeyQuote, zxcore.KeyApostrophe},
		{RetroKeyLeftParen, zxcore.KeyParenLeft},
		{RetroKeyRightParen, zxcore.KeyParenRight},
		{RetroKeyAsterisk, zxcore.KeyAsterisk},
		{RetroKeyPlus, zxcore.KeyPlus},
		{RetroKeyComma, zxcore.KeyComma},
		{RetroKeyMinus, zxcore.KeyMinus},
		{RetroKeyPeriod, zxcore.KeyPeriod},
		{RetroKeySlash, zxcore.KeySlash},
	}
	for i := RetroKey(0); i <= RetroKey9-RetroKey0; i++ {
		m = append(m, keyMapping{RetroKey0 + i, zxcore.Key0 + zxcore.Key(i)})
	}
	m = append(m,
		keyMapping{RetroKeyColon, zxcore.KeyColon},
		keyMapping{RetroKeySemicolon, zxcore.KeySemicolon},
		keyMapping{RetroKeyLess, zxcore.KeyLess},
		keyMapping{RetroKeyEquals, zxcore.KeyEqual},
		keyMapping{RetroKeyGreater, zxcore.KeyGreater},
		keyMapping{RetroKeyCaret, zxcore.KeyAsciiCircum},
	)
	for i := RetroKey(0); i <= RetroKeyZ-RetroKeyA; i++ {
		m = append(m, keyMapping{RetroKeyA + i, zxcore.KeyA + zxcore.Key(i)})
	}
	m = append(m,
		keyMapping{RetroKeyBackspace, zxcore.KeyBackSpace},
		keyMapping{RetroKeyKPEnter, zxcore.KeyKPEnter},
		keyMapping{RetroKeyUp, zxcore.KeyUp},
		keyMapping{RetroKeyDown, zxcore.KeyDown},
		keyMapping{RetroKeyLeft, zxcore.KeyLeft},
		keyMapping{RetroKeyRight, zxcore.KeyRight},
		keyMapping{RetroKeyInsert, zxcore.KeyInsert},
		keyMapping{RetroKeyDelete, zxcore.KeyDelete},
		keyMapping{RetroKeyHome, zxcore.KeyHome},
		keyMapping{RetroKeyEnd, zxcore.KeyEnd},
		keyMapping{RetroKeyPageUp, zxcore.KeyPageUp},
		keyMapping{RetroKeyPageDown, zxcore.KeyPageDown},
	)
	for i := RetroKey(0); i <= RetroKeyF12-RetroKeyF1; i++ {
		m = append(m, keyMapping{RetroKeyF1 + i, zxcore.KeyF1 + zxcore.Key(i)})
	}
	m = append(m,
		keyMapping{RetroKeyLShift, zxcore.KeyShiftL},
		keyMapping{RetroKeyRShift, zxcore.KeyShiftR},
		keyMapping{RetroKeyLCtrl, zxcore.KeyControlL},
		keyMapping{RetroKeyRCtrl, zxcore.KeyControlR},
		keyMapping{RetroKeyLAlt, zxcore.KeyAltL},
		keyMapping{RetroKeyRAlt, zxcore.KeyAltR},
		keyMapping{RetroKeyLMeta, zxcore.KeyMetaL},
		keyMapping{RetroKeyRMeta, zxcore.KeyMetaR},
		keyMapping{RetroKeyLSuper, zxcore.KeySuperL},
		keyMapping{RetroKeyRSuper, zxcore.KeySuperR},
		keyMapping{RetroKeyMenu, zxcore.KeyModeSwitch},
	)
	return m
}

// TranslateKey returns the engine key for a host key code.
func TranslateKey(k RetroKey) (zxcore.Key, bool) {
	for _, m := range keymap {
		if m.host == k {
			return m.engine, true
		}
	}
	return zxcore.KeyNone, false
}
