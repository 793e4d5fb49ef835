package language

import "regexp"

// Code is a two-letter language tag.
type Code string

const Default Code = "en"

var names = map[Code]string{
	"en": "English",
	"fr": "French",
	"es": "Spanish",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"tr": "Turkish",
	"sv": "Swedish",
	"id": "Indonesian",
	"ro": "Romanian",
	"ru": "Russian",
	"uk": "Ukrainian",
	"ar": "Arabic",
	"ja": "Japanese",
	"zh": "Chinese",
	"el": "Greek",
	"th": "Thai",
	"ko": "Korean",
	"hi": "Hindi",
	"vi": "Vietnamese",
	"he": "Hebrew",
	"fa": "Persian",
	"da": "Danish",
	"no": "Norwegian",
	"fi": "Finnish",
	"cs": "Czech",
	"hu": "Hungarian",
	"bn": "Bengali",
}

// Name returns the display name for code and whether the catalog knows it.
func Name(code Code) (string, bool) {
	n, ok := names[code]
	return n, ok
}

// Codes lists every catalog entry.
func Codes() []Code {
	out := make([]Code, 0, len(names))
	for c := range names {
		out = append(out, c)
	}
	return out
}

// script rules are checked in order, first match wins.
type scriptRule struct {
	code Code
	re   *regexp.Regexp
}

var scripts = []scriptRule{
	{"he", regexp.MustCompile(`[\x{0590}-\x{05FF}]`)},
	{"ar", arabic},
	{"ja", regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}]`)},
	{"zh", regexp.MustCompile(`[\x{4E00}-\x{9FFF}\x{3400}-\x{4DBF}]`)},
	{"el", regexp.MustCompile(`[\x{0370}-\x{03FF}]`)},
	{"th", regexp.MustCompile(`[\x{0E00}-\x{0E7F}]`)},
	{"ko", regexp.MustCompile(`[\x{AC00}-\x{D7AF}\x{1100}-\x{11FF}]`)},
	{"hi", regexp.MustCompile(`[\x{0900}-\x{097F}]`)},
	{"bn", regexp.MustCompile(`[\x{0980}-\x{09FF}]`)},
	{"vi", regexp.MustCompile(`[\x{0102}-\x{0103}\x{0110}-\x{0111}\x{0128}-\x{0129}\x{0168}-\x{0169}\x{01A0}-\x{01A1}\x{1EA0}-\x{1EFF}]`)},
	{"ru", cyrillic},
}

var cyrillic = regexp.MustCompile(`[\x{0400}-\x{04FF}]`)

var arabic = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

// Persian shares the Arabic block; it is picked when its own letters
// (پ چ ژ گ and the Persian forms of kaf and yeh) and words outnumber
// Arabic-only ones (ة ك ى ي).
var (
	persianLetters = regexp.MustCompile(`[\x{067E}\x{0686}\x{0698}\x{06AF}\x{06A9}\x{06CC}]`)
	persianWords   = wordSet("است", "شما", "چطور", "دارم", "خوب", "ممنون", "هستم", "می", "این", "چه")
	arabicLetters  = regexp.MustCompile(`[\x{0629}\x{0643}\x{0649}\x{064A}]`)
	arabicWords    = wordSet("كيف", "هل", "ماذا", "هذا", "أنا", "شكرا", "في", "مرحبا")
)

// Ukrainian is picked over Russian only when its markers outnumber Russian ones.
var (
	ukrainianLetters = regexp.MustCompile(`[іїєґ]`)
	ukrainianWords   = wordSet("його", "йому", "їх", "їм", "що", "це", "ви", "ваша", "дякую", "привіт", "як", "справи")
	russianLetters   = regexp.MustCompile(`[ыэъё]`)
	russianWords     = wordSet("его", "ему", "что", "это", "вы", "ваша", "спасибо", "привет", "как", "дела")
)

// latinRule scores one Latin-script language: each token found in words adds
// one point, any character in bonus adds one more.
type latinRule struct {
	code  Code
	words map[string]struct{}
	bonus *regexp.Regexp
}

var latin = []latinRule{
	{
		code: "en",
		words: wordSet("the", "is", "are", "was", "were", "have", "has", "do", "does", "did", "will",
			"would", "should", "could", "be", "been", "being", "a", "an", "and", "or", "but", "if",
			"then", "what", "which", "who", "when", "where", "why", "how", "this", "that", "these",
			"those", "can", "may", "might", "must", "with", "from", "about", "into", "through",
			"hello", "hi", "thanks", "please", "today", "yes", "you", "your", "my", "it", "not"),
	},
	{
		code: "fr",
		words: wordSet("je", "tu", "il", "elle", "nous", "vous", "ils", "elles", "être", "avoir",
			"est", "sont", "suis", "ai", "avez", "allez", "comment", "quoi", "où", "quand",
			"pourquoi", "qui", "quel", "quelle", "avec", "sans", "dans", "sur", "sous", "pour",
			"mais", "donc", "car", "bonjour", "salut", "merci", "svp", "ça", "va", "le", "les",
			"des", "une", "du", "ne", "pas", "très", "aussi"),
		bonus: regexp.MustCompile(`[âêîûëïœ]|\b(c'|qu'|j'|n'|l'|d')\pL`),
	},
	{
		code: "es",
		words: wordSet("yo", "tú", "él", "ella", "nosotros", "ellos", "ser", "estar", "tener",
			"hacer", "poder", "querer", "decir", "es", "son", "estoy", "está", "están", "estás",
			"tengo", "tiene", "qué", "cómo", "dónde", "cuándo", "quién", "con", "sin", "para",
			"pero", "hola", "gracias", "por", "favor", "hoy", "muy", "también", "el", "los",
			"las", "una", "y"),
		bonus: regexp.MustCompile(`[ñ¿¡]`),
	},
	{
		code: "de",
		words: wordSet("ich", "du", "er", "sie", "wir", "ihr", "der", "die", "das", "den", "dem",
			"des", "ein", "eine", "ist", "sind", "bin", "habe", "hat", "wird", "kann", "was",
			"wie", "wo", "wann", "warum", "wer", "mit", "ohne", "für", "aber", "und", "oder",
			"nicht", "hallo", "danke", "bitte", "heute", "auch", "sehr", "geht", "es"),
		bonus: regexp.MustCompile(`[äöüß]`),
	},
	{
		code: "it",
		words: wordSet("io", "lui", "lei", "noi", "voi", "loro", "essere", "avere", "sono", "sei",
			"è", "siamo", "siete", "ho", "hai", "ha", "abbiamo", "hanno", "cosa", "come", "dove",
			"quando", "perché", "chi", "senza", "per", "ma", "ciao", "grazie", "prego", "oggi",
			"il", "gli", "della", "che", "non", "molto", "anche", "stai"),
		bonus: regexp.MustCompile(`[ìò]`),
	},
	{
		code: "pt",
		words: wordSet("eu", "ele", "ela", "nós", "eles", "elas", "estar", "ter", "fazer", "sou",
			"é", "somos", "são", "tenho", "tem", "temos", "têm", "que", "como", "onde", "quem",
			"com", "sem", "mas", "olá", "obrigado", "obrigada", "hoje", "você", "não", "muito",
			"também", "está", "isso"),
		bonus: regexp.MustCompile(`[ãõ]`),
	},
	{
		code: "nl",
		words: wordSet("ik", "jij", "hij", "zij", "wij", "ze", "het", "een", "zijn", "hebben",
			"worden", "kunnen", "willen", "moeten", "gaan", "doen", "ben", "bent", "heb", "hebt",
			"heeft", "wat", "hoe", "waar", "wanneer", "waarom", "met", "zonder", "voor", "maar",
			"of", "dank", "alsjeblieft", "vandaag", "niet", "gaat", "goed", "ook"),
	},
	{
		code: "pl",
		words: wordSet("jest", "są", "nie", "tak", "ja", "ty", "on", "ona", "my", "wy", "oni",
			"się", "że", "co", "jak", "gdzie", "kiedy", "dlaczego", "kto", "dzień", "dobry",
			"dziękuję", "proszę", "czy", "jestem", "mam", "masz", "ale", "bardzo", "to"),
		bonus: regexp.MustCompile(`[ąćęłńśźż]`),
	},
	{
		code: "tr",
		words: wordSet("sen", "biz", "siz", "onlar", "bir", "bu", "şu", "ve", "ile", "için", "ama",
			"değil", "var", "yok", "ne", "nasıl", "nerede", "neden", "kim", "merhaba",
			"teşekkürler", "lütfen", "evet", "hayır", "çok", "mı", "mi", "musun", "misin"),
		bonus: regexp.MustCompile(`[ğış]`),
	},
	{
		code: "sv",
		words: wordSet("jag", "han", "hon", "vi", "ni", "är", "har", "och", "att", "det", "som",
			"inte", "men", "hur", "vad", "varför", "vem", "hej", "tack", "snälla", "idag",
			"också", "mycket", "mår"),
		bonus: regexp.MustCompile(`[å]`),
	},
	{
		code: "id",
		words: wordSet("saya", "kamu", "dia", "kami", "kita", "mereka", "adalah", "ini", "itu",
			"dan", "atau", "tetapi", "dengan", "untuk", "dari", "yang", "tidak", "apa",
			"bagaimana", "mengapa", "siapa", "halo", "terima", "kasih", "tolong", "hari",
			"sangat", "juga", "kabar"),
	},
	{
		code: "ro",
		words: wordSet("ea", "ei", "este", "sunt", "am", "și", "sau", "dar", "cu", "fără",
			"pentru", "nu", "ce", "cum", "unde", "când", "cine", "mulțumesc", "vă",
			"rog", "astăzi", "foarte", "ești", "eu"),
		bonus: regexp.MustCompile(`[șțşţ]`),
	},
	{
		code: "da",
		words: wordSet("jeg", "ikke", "hvordan", "hvorfor", "også", "og", "hvad", "tak", "meget",
			"mig", "dig", "noget", "af", "hej", "godt", "nu", "spørgsmål", "gerne", "hvem"),
		bonus: regexp.MustCompile(`[æø]`),
	},
	{
		code: "no",
		words: wordSet("jeg", "ikke", "hvordan", "hvorfor", "også", "og", "hva", "takk", "mye",
			"meg", "deg", "noe", "av", "hei", "bra", "nå", "spørsmål", "gjerne", "hvem"),
		bonus: regexp.MustCompile(`[æø]`),
	},
	{
		code: "fi",
		words: wordSet("minä", "sinä", "hän", "me", "te", "he", "on", "ei", "ja", "tai", "mutta",
			"kanssa", "mitä", "miten", "missä", "miksi", "kuka", "kiitos", "moi", "terve", "hyvää",
			"päivää", "kyllä", "olen", "olet", "kysymys", "tänään", "kuinka", "voit", "paljon"),
		bonus: regexp.MustCompile(`ää|yy|öö`),
	},
	{
		code: "cs",
		words: wordSet("já", "jsem", "jsi", "jsou", "není", "ano", "nebo", "kde", "kdy", "proč",
			"děkuji", "prosím", "dobrý", "den", "ahoj", "mám", "máš", "se", "otázku", "velmi",
			"dnes", "jak", "co"),
		bonus: regexp.MustCompile(`[ěřů]`),
	},
	{
		code: "hu",
		words: wordSet("én", "ők", "van", "vagyok", "vagy", "nem", "igen", "és", "hogy", "mit",
			"hol", "mikor", "miért", "köszönöm", "kérem", "szia", "jó", "napot", "kérdésem",
			"nagyon", "egy", "az", "jól"),
		bonus: regexp.MustCompile(`[őű]`),
	},
}

// minLatinScore filters out single incidental matches.
const minLatinScore = 2

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
