// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package catalog

import "github.com/poiesic/librarian/core"

var seed = []struct {
	title   string
	summary string
}{
	{
		"1984",
		"In a totalitarian state ruled by Big Brother, constant surveillance, propaganda, and manipulation of truth control citizens. Winston Smith secretly rebels, but betrayal leads to his downfall.",
	},
	{
		"The Hobbit",
		"Bilbo Baggins joins Gandalf and dwarves to reclaim treasure from the dragon Smaug. Along the way, he finds courage, gains a magical ring, and survives battles, forever changed by the journey.",
	},
	{
		"To Kill a Mockingbird",
		"Scout Finch witnesses racial injustice in 1930s Alabama as her father defends Tom Robinson, a Black man wrongly accused of rape. Through events with neighbors and Boo Radley, Scout learns empathy.",
	},
	{
		"Harry Potter and the Sorcerer’s Stone",
		"Harry discovers he is a wizard and attends Hogwarts, where he makes friends and confronts Voldemort’s attempt to return through the Sorcerer’s Stone. He prevents Voldemort’s return and finds a new home at Hogwarts.",
	},
	{
		"The Catcher in the Rye",
		"Expelled teen Holden Caulfield wanders New York, struggling with alienation and adulthood. Obsessed with protecting innocence, he breaks down but finds brief solace with his sister Phoebe.",
	},
	{
		"The Little Prince",
		"A stranded pilot meets a boy from another planet who reflects on love, innocence, and human flaws. Through encounters and a fox’s lesson, he learns that what is essential is invisible to the eye.",
	},
	{
		"Pride and Prejudice",
		"Elizabeth Bennet overcomes prejudice toward the proud Mr. Darcy, realizing his true character. After misunderstandings and family scandals, they marry, alongside Jane and Mr. Bingley.",
	},
	{
		"The Book Thief",
		"In Nazi Germany, Liesel finds comfort in books while living with foster parents. She bonds with Max, a hidden Jew. Narrated by Death, the story shows love, loss, and the power of words during war.",
	},
	{
		"The Chronicles of Narnia: The Lion, the Witch and the Wardrobe",
		"Four siblings enter Narnia through a wardrobe, join Aslan the lion, and defeat the White Witch. Edmund betrays but is redeemed. They rule Narnia as kings and queens before returning home as children.",
	},
	{
		"Animal Farm",
		"Farm animals overthrow humans, but pigs led by Napoleon become oppressive rulers. The revolution’s ideals collapse, ending with the pigs indistinguishable from the humans they replaced.",
	},
}

// DefaultBooks returns fresh copies of the built-in catalog in corpus order.
func DefaultBooks() []*core.Book {
	books := make([]*core.Book, len(seed))
	for i, s := range seed {
		books[i] = &core.Book{
			Title:    s.title,
			Summary:  s.summary,
			Position: i,
		}
	}
	return books
}
