package morse

import "fmt"

// codeByChar holds the code for every character the keyer can send and the
// decoder can emit. Multi-character prosigns are omitted so that every table
// entry round-trips through a single rune.
var codeByChar = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",

	'1': ".----", '2': "..---", '3': "...--", '4': "....-", '5': ".....",
	'6': "-....", '7': "--...", '8': "---..", '9': "----.", '0': "-----",

	'.': ".-.-.-", ',': "--..--", '?': "..--..", '/': "-..-.",
	'=': "-...-", '+': ".-.-.", '@': ".--.-.", '(': "-.--.",
	')': "-.--.-", ':': "---...", ';': "-.-.-.", '\'': ".----.",
	'"': ".-..-.", '-': "-....-", '_': "..--.-", '$': "...-..-",
	'!': "-.-.--",
}

var charByCode = make(map[string]rune, len(codeByChar))

func init() {
	for char, code := range codeByChar {
		if dup, exists := charByCode[code]; exists {
			panic(fmt.Sprintf("morse: code %q maps to both %q and %q", code, dup, char))
		}
		charByCode[code] = char
	}
}
