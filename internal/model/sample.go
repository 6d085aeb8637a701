// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

const (
	imageCoding    = "https://images.pexels.com/photos/3184292/pexels-photo-3184292.jpeg"
	imageWeb       = "https://images.pexels.com/photos/265087/pexels-photo-265087.jpeg"
	imageLanguages = "https://images.pexels.com/photos/256417/pexels-photo-256417.jpeg"
	imageGerman    = "https://images.pexels.com/photos/301920/pexels-photo-301920.jpeg"
)

// DefaultCourseImage is shown for courses without an image URL.
const DefaultCourseImage = imageCoding

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SampleCourses returns the built-in course catalog displayed when the
// database has no courses. A fresh slice is returned on each call.
func SampleCourses() []Course {
	return []Course{
		{
			ID:            "1",
			TitleFR:       "Club Programmation (Développement Web)",
			TitleEN:       "Programming Club (Web Development)",
			TitleAR:       "نادي البرمجة (تطوير الويب)",
			DescriptionFR: "Formation complète pour lycéens : HTML, CSS, JavaScript, PHP. Apprentissage par projets concrets.",
			DescriptionEN: "Complete training for high school students: HTML, CSS, JavaScript, PHP. Project-based learning.",
			DescriptionAR: "تدريب شامل لطلاب الثانوية: HTML، CSS، JavaScript، PHP. تعلم قائم على المشاريع.",
			Category:      CategoryProgramming,
			Duration:      "3 mois",
			Price:         350,
			ImageURL:      imageCoding,
			CreatedAt:     day(2024, time.January, 1),
			IsFeatured:    true,
		},
		{
			ID:            "2",
			TitleFR:       "Maîtriser WordPress - Créer des Sites Web Professionnels",
			TitleEN:       "Master WordPress - Build Professional Websites",
			TitleAR:       "إتقان ووردبريس - إنشاء مواقع ويب احترافية",
			DescriptionFR: "Créez et gérez des sites web professionnels sans programmation. Utilisation d'Elementor, WooCommerce.",
			DescriptionEN: "Create and manage professional websites without coding. Using Elementor, WooCommerce.",
			DescriptionAR: "إنشاء وإدارة مواقع ويب احترافية بدون برمجة. استخدام Elementor، WooCommerce.",
			Category:      CategoryWeb,
			Duration:      "2 mois",
			Price:         450,
			ImageURL:      imageWeb,
			CreatedAt:     day(2024, time.January, 2),
			IsFeatured:    true,
		},
		{
			ID:            "3",
			TitleFR:       "Français - Tous Niveaux",
			TitleEN:       "French - All Levels",
			TitleAR:       "الفرنسية - جميع المستويات",
			DescriptionFR: "Cours de français pour tous les niveaux, de débutant à avancé. Préparation aux examens officiels.",
			DescriptionEN: "French courses for all levels, from beginner to advanced. Official exam preparation.",
			DescriptionAR: "دروس الفرنسية لجميع المستويات، من المبتدئ إلى المتقدم. التحضير للامتحانات الرسمية.",
			Category:      CategoryLanguages,
			Duration:      "4 mois",
			Price:         250,
			ImageURL:      imageLanguages,
			CreatedAt:     day(2024, time.January, 3),
		},
		{
			ID:            "4",
			TitleFR:       "Allemand A1 → B1",
			TitleEN:       "German A1 → B1",
			TitleAR:       "الألمانية A1 → B1",
			DescriptionFR: "Formation complète en allemand du niveau débutant au niveau intermédiaire.",
			DescriptionEN: "Complete German training from beginner to intermediate level.",
			DescriptionAR: "تدريب شامل في الألمانية من المستوى المبتدئ إلى المتوسط.",
			Category:      CategoryLanguages,
			Duration:      "6 mois",
			Price:         400,
			ImageURL:      imageGerman,
			CreatedAt:     day(2024, time.January, 4),
		},
	}
}

// SamplePosts returns the built-in blog posts displayed when the database
// has no published posts. Newest first.
func SamplePosts() []BlogPost {
	return []BlogPost{
		{
			ID:        "1",
			TitleFR:   "Les tendances du développement web en 2024",
			TitleEN:   "Web development trends in 2024",
			TitleAR:   "اتجاهات تطوير الويب في 2024",
			ExcerptFR: "Découvrez les technologies et frameworks qui façonnent l'avenir du développement web cette année.",
			ExcerptEN: "Discover the technologies and frameworks shaping the future of web development this year.",
			ExcerptAR: "اكتشف التقنيات والأطر التي تشكل مستقبل تطوير الويب هذا العام.",
			ContentFR: "Le développement web continue d'évoluer rapidement...",
			ContentEN: "Web development continues to evolve rapidly...",
			ContentAR: "يستمر تطوير الويب في التطور بسرعة...",
			ImageURL:  imageCoding,
			CreatedAt: day(2024, time.January, 15),
			Published: true,
		},
		{
			ID:        "2",
			TitleFR:   "Pourquoi choisir WordPress pour votre site web ?",
			TitleEN:   "Why choose WordPress for your website?",
			TitleAR:   "لماذا اختيار ووردبريس لموقعك الإلكتروني؟",
			ExcerptFR: "WordPress reste la plateforme la plus populaire pour créer des sites web professionnels. Voici pourquoi.",
			ExcerptEN: "WordPress remains the most popular platform for creating professional websites. Here's why.",
			ExcerptAR: "يبقى ووردبريس المنصة الأكثر شعبية لإنشاء مواقع ويب احترافية. إليكم السبب.",
			ContentFR: "WordPress est utilisé par plus de 40% des sites web...",
			ContentEN: "WordPress is used by more than 40% of websites...",
			ContentAR: "يستخدم ووردبريس من قبل أكثر من 40% من مواقع الويب...",
			ImageURL:  imageWeb,
			CreatedAt: day(2024, time.January, 10),
			Published: true,
		},
		{
			ID:        "3",
			TitleFR:   "L'importance de l'apprentissage des langues en 2024",
			TitleEN:   "The importance of language learning in 2024",
			TitleAR:   "أهمية تعلم اللغات في 2024",
			ExcerptFR: "Dans un monde de plus en plus connecté, maîtriser plusieurs langues devient un atout majeur.",
			ExcerptEN: "In an increasingly connected world, mastering multiple languages becomes a major asset.",
			ExcerptAR: "في عالم متصل بشكل متزايد، يصبح إتقان عدة لغات ميزة كبيرة.",
			ContentFR: "La mondialisation et le travail à distance...",
			ContentEN: "Globalization and remote work...",
			ContentAR: "العولمة والعمل عن بُعد...",
			ImageURL:  imageLanguages,
			CreatedAt: day(2024, time.January, 5),
			Published: true,
		},
	}
}

// SampleTestimonials returns the reviews inserted by the demo seed.
func SampleTestimonials() []Testimonial {
	return []Testimonial{
		{
			Name:      "Amira B.",
			Course:    "Club Programmation",
			Rating:    5,
			CommentFR: "Des formateurs passionnés et des projets concrets. J'ai créé mon premier site en trois mois.",
			CommentEN: "Passionate trainers and real projects. I built my first website in three months.",
			CommentAR: "مدربون شغوفون ومشاريع حقيقية. أنشأت موقعي الأول في ثلاثة أشهر.",
			CreatedAt: day(2024, time.February, 3),
		},
		{
			Name:      "Youssef K.",
			Course:    "Allemand A1 → B1",
			Rating:    5,
			CommentFR: "Une préparation sérieuse, j'ai obtenu mon certificat B1 du premier coup.",
			CommentEN: "Serious preparation, I passed my B1 certificate on the first try.",
			CommentAR: "تحضير جدي، حصلت على شهادة B1 من المحاولة الأولى.",
			CreatedAt: day(2024, time.February, 2),
		},
		{
			Name:      "Sarra M.",
			Course:    "Maîtriser WordPress",
			Rating:    4,
			CommentFR: "Très pratique, je gère maintenant le site de ma boutique toute seule.",
			CommentEN: "Very practical, I now run my shop's website on my own.",
			CommentAR: "عملي جدا، أدير الآن موقع متجري بنفسي.",
			CreatedAt: day(2024, time.February, 1),
		},
	}
}
