// Package content holds the read-only educational material served to every user.
package content

import "github.com/tup-eyegrade/eyegrade-api/models"

const (
	FlashcardsPerDraw = 5
	QuestionsPerDraw  = 10
)

var flashcardPool = [...]models.Flashcard{
	{Title: "The 'Doomscroll'", Content: "Staring at your phone in total darkness confuses your brain and strains eyes. Turn on a lamp!", Ref: "Healthline"},
	{Title: "Caffeine Twitch", Content: "Eyelid twitching? You might have had too much coffee or not enough sleep. Cut back on the espresso.", Ref: "Mayo Clinic"},
	{Title: "The Knuckle Rub", Content: "Rubbing eyes feels good but can break blood vessels and cause dark circles. Resist the urge!", Ref: "Cleveland Clinic"},
	{Title: "Blink Rate Drop", Content: "You normally blink 15x a minute. On a computer, it drops to 5x. That's why your eyes feel gritty.", Ref: "UI Health"},
	{Title: "The 'Squint'", Content: "Squinting doesn't help you focus; it causes headaches. Just zoom in (Ctrl +) or get glasses.", Ref: "AllAboutVision"},
	{Title: "Morning Crust", Content: "That 'sleep' in your eyes is just mucus, oil, and skin cells that didn't wash away because you weren't blinking.", Ref: "Utah Eye"},
	{Title: "Eye Strain Headache", Content: "Pain behind your eyes after work? That's digital eye strain. Take a break, your deadline can wait 5 mins.", Ref: "WebMD"},
	{Title: "The Carrot Myth", Content: "Carrots have Vitamin A, but they won't give you night vision. That was WWII propaganda!", Ref: "Smithline"},
	{Title: "Reading in Dark", Content: "It won't make you go blind, but it causes temporary strain and headache. Turn a light on.", Ref: "Harvard Health"},
	{Title: "20-20 isn't Perfect", Content: "20/20 just means 'average'. Some people have 20/15 or even 20/10 vision (eagle eyes)!", Ref: "AOA"},
	{Title: "Cloudy Day UV", Content: "Clouds don't block UV rays. You still need sunglasses even if it's not 'sunny'.", Ref: "NEI"},
	{Title: "Tap Water Risk", Content: "Never wash contact lenses with tap water. It contains microbes that can cause blindness.", Ref: "CDC"},
	{Title: "Cheap Sunglasses", Content: "Dark glasses without UV protection are worse than none. They dilate pupils, letting MORE UV in.", Ref: "AAO"},
	{Title: "Makeup Expiry", Content: "Mascara expires in 3 months. Using old makeup is a fast track to pink eye.", Ref: "AAO"},
	{Title: "Contact Naps", Content: "Napping in contacts cuts off oxygen to your cornea. Never do it, seriously.", Ref: "CDC"},
	{Title: "Rebound Redness", Content: "Overusing 'red-eye' remover drops can actually make your eyes redder over time.", Ref: "AAO"},
	{Title: "Brain Power", Content: "Your eyes use about 65% of your brainpower, more than any other body part!", Ref: "Discovery Eye"},
	{Title: "Fast Healers", Content: "The cornea is one of the fastest healing tissues. Minor scratches often heal in 48 hours.", Ref: "SciAm"},
	{Title: "Seeing Worms?", Content: "Those floating squiggles are called 'floaters'. They are tiny protein clumps casting shadows on your retina.", Ref: "NEI"},
	{Title: "Emotional Tears", Content: "Tears from crying contain different chemicals (stress hormones) than tears from cutting onions.", Ref: "Psychology Today"},
	{Title: "Active Muscles", Content: "The muscles that move your eyes are the fastest and strongest (for their size) in the body.", Ref: "Loc.gov"},
	{Title: "Color Blindness", Content: "1 in 12 men are color blind, compared to only 1 in 200 women.", Ref: "Colour Blindness"},
	{Title: "20-20-20 Rule", Content: "Every 20 mins, look 20 ft away for 20 secs. It's the reset button for your eyes.", Ref: "AOA"},
	{Title: "High-Five Check", Content: "High-Five your screen. If you can't touch it with a straight arm, it's too far (or too close).", Ref: "AOA"},
	{Title: "Look Down", Content: "Position monitors slightly below eye level. Looking up exposes more eye surface, causing dryness.", Ref: "OSHA"},
	{Title: "Blue Light", Content: "Blue light suppresses melatonin. Use 'Night Shift' mode so you can actually fall asleep.", Ref: "Harvard Health"},
	{Title: "Cold Compress", Content: "Got puffy eyes? A cold spoon or compress constricts blood vessels and reduces swelling fast.", Ref: "Healthline"},
	{Title: "Air Vents", Content: "Don't let the AC or fan blow directly into your face. It turns your tears into vapor.", Ref: "NEI"},
	{Title: "Hydration", Content: "Dehydrated body = Dry eyes. If you're thirsty, your eyes are likely thirsty too.", Ref: "Mayo Clinic"},
	{Title: "Polarized Lenses", Content: "Driving? Polarized sunglasses reduce glare from the road and other cars.", Ref: "AllAboutVision"},
}

const yesNo = "yesno"

var questionPool = [...]models.Question{
	{Q: "Do you experience headaches after 2 hours of screen time?", Type: yesNo},
	{Q: "Is your vision blurry when looking at distant objects?", Type: yesNo},
	{Q: "Do your eyes feel dry or gritty?", Type: yesNo},
	{Q: "Do you find yourself squinting to read the board?", Type: yesNo},
	{Q: "Are your eyes sensitive to light?", Type: yesNo},
	{Q: "Do you see double vision?", Type: yesNo},
	{Q: "Do you have difficulty seeing at night?", Type: yesNo},
	{Q: "Do you rub your eyes frequently?", Type: yesNo},
	{Q: "Is your neck or shoulder painful after computer use?", Type: yesNo},
	{Q: "Do you see halos around lights?", Type: yesNo},
	{Q: "Do you have to hold your phone very close to read?", Type: yesNo},
	{Q: "Do your eyes tear up excessively?", Type: yesNo},
	{Q: "Do your eyelids twitch involuntarily?", Type: yesNo},
	{Q: "Do your eyes look red or bloodshot?", Type: yesNo},
	{Q: "Do colors look washed out or faded?", Type: yesNo},
	{Q: "Do you feel a burning sensation in your eyes?", Type: yesNo},
	{Q: "Is it hard to refocus when looking up from your screen?", Type: yesNo},
	{Q: "Do your eyes feel heavy or tired?", Type: yesNo},
	{Q: "Do you lose your place while reading lines of text?", Type: yesNo},
}

// Flashcards returns a fresh copy of the whole flashcard pool.
func Flashcards() []models.Flashcard {
	out := make([]models.Flashcard, len(flashcardPool))
	copy(out, flashcardPool[:])
	return out
}

// Questions returns a fresh copy of the whole question pool.
func Questions() []models.Question {
	out := make([]models.Question, len(questionPool))
	copy(out, questionPool[:])
	return out
}
